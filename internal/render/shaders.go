package render

// GLSL sources for the ray-marching program. The fragment stage mirrors
// march.go; keep the two in sync when touching either.

const volumeVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;

uniform mat4 uModelView;
uniform mat4 uProjection;

out vec3 vPosition;

void main() {
    vPosition = aPosition;
    gl_Position = uProjection * uModelView * vec4(aPosition, 1.0);
}
`

const volumeFragmentShader = `#version 410 core
in vec3 vPosition;
out vec4 FragColor;

uniform sampler2D uAtlas;
uniform float uDepth;

uniform int uMode;        // 0 = composite (volume/surface/raycast), 1 = MIP
uniform int uColorMap;    // 0 grayscale, 1 hot, 2 cool, 3 bone
uniform float uOpacity;
uniform float uThreshold;
uniform float uWindowCenter;
uniform float uWindowWidth;
uniform float uStepSize;

const int MAX_STEPS = 512;
const int MAX_MIP_STEPS = 256;
const float ALPHA_CUTOFF = 0.95;

// Sample the slice atlas at an object-space position in [-1,1]^3.
// Out-of-volume positions read as empty.
float sampleVolume(vec3 p) {
    vec3 q = p * 0.5 + 0.5;
    if (any(lessThan(q, vec3(0.0))) || any(greaterThan(q, vec3(1.0)))) {
        return 0.0;
    }
    float slice = min(floor(q.z * uDepth), uDepth - 1.0);
    vec2 uv = vec2((q.x + slice) / uDepth, q.y);
    return texture(uAtlas, uv).r;
}

float windowed(float v) {
    float lower = uWindowCenter - uWindowWidth * 0.5;
    return clamp((v - lower) / uWindowWidth, 0.0, 1.0);
}

vec3 applyColorMap(float t) {
    if (uColorMap == 1) return vec3(t, 0.5 * t, 0.0);
    if (uColorMap == 2) return vec3(0.0, 0.5 * t, t);
    if (uColorMap == 3) return vec3(0.8 * t, 0.9 * t, t);
    return vec3(t);
}

void main() {
    // Ray starts at the cube surface; the entry position doubles as
    // the ray direction (short-range approximation, kept on purpose).
    vec3 dir = normalize(vPosition);
    vec3 pos = vPosition;

    if (uMode == 1) {
        float best = 0.0;
        for (int i = 0; i < MAX_MIP_STEPS; i++) {
            best = max(best, windowed(sampleVolume(pos)));
            pos += dir * uStepSize;
            if (any(greaterThan(abs(pos), vec3(1.0)))) break;
        }
        FragColor = vec4(applyColorMap(best), 1.0);
        return;
    }

    vec4 acc = vec4(0.0);
    for (int i = 0; i < MAX_STEPS; i++) {
        float t = windowed(sampleVolume(pos));
        float a = t > uThreshold ? uOpacity : 0.0;
        acc.rgb += applyColorMap(t) * a * (1.0 - acc.a);
        acc.a += a * (1.0 - acc.a);
        if (acc.a >= ALPHA_CUTOFF) break;
        pos += dir * uStepSize;
        if (any(greaterThan(abs(pos), vec3(1.0)))) break;
    }
    FragColor = acc;
}
`
