package opengl

// The scene shader approximates a metallic/roughness material lit by one
// ambient and one directional light. Output is gamma encoded.
const sceneVertexShader = `
#version 410 core

layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTexcoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform mat3 uNormalMatrix;

out vec3 vWorldPosition;
out vec3 vNormal;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPosition = world.xyz;
    vNormal = uNormalMatrix * aNormal;
    gl_Position = uProjection * uView * world;
}
`

const sceneFragmentShader = `
#version 410 core

in vec3 vWorldPosition;
in vec3 vNormal;

uniform vec3 uViewPosition;
uniform vec3 uDiffuseColour;
uniform float uMetalness;
uniform float uRoughness;
uniform vec3 uAmbientColour;
uniform float uAmbientIntensity;
uniform vec3 uLightColour;
uniform float uLightIntensity;
uniform vec3 uLightDirection;
uniform int uMode;

out vec4 outColour;

const float PI = 3.14159265;

void main() {
    vec3 n = normalize(vNormal);
    if (length(vNormal) < 1e-6) {
        n = normalize(vWorldPosition);
    }
    if (uMode == 2) {
        outColour = vec4(n * 0.5 + 0.5, 1.0);
        return;
    }

    vec3 albedo = uMode == 1 ? vec3(1.0) : uDiffuseColour;
    float metalness = uMode == 1 ? 0.0 : uMetalness;
    float roughness = clamp(uRoughness, 0.04, 1.0);

    vec3 l = normalize(-uLightDirection);
    vec3 v = normalize(uViewPosition - vWorldPosition);
    vec3 h = normalize(l + v);

    float ndotl = max(dot(n, l), 0.0);
    float ndoth = max(dot(n, h), 0.0);

    vec3 diffuse = albedo * (1.0 - metalness);
    vec3 f0 = mix(vec3(0.04), albedo, metalness);
    float a = roughness * roughness;
    float shininess = max(2.0 / (a * a) - 2.0, 1.0);
    vec3 specular = f0 * pow(ndoth, shininess) * (shininess + 8.0) / (8.0 * PI);

    vec3 direct = (diffuse + specular) * uLightColour * uLightIntensity * ndotl;
    vec3 ambient = diffuse * uAmbientColour * uAmbientIntensity;
    vec3 colour = direct + ambient;

    outColour = vec4(pow(colour, vec3(1.0 / 2.2)), 1.0);
}
`

// Overlays are unit quads positioned in NDC and coloured by a single
// channel coverage mask. The colour is premultiplied by coverage.
const overlayVertexShader = `
#version 410 core

layout(location = 0) in vec2 aPosition;
layout(location = 1) in vec2 aTexcoord;

uniform vec2 uCentre;
uniform vec2 uSize;

out vec2 vTexcoord;

void main() {
    vTexcoord = aTexcoord;
    gl_Position = vec4(uCentre + aPosition * uSize, 0.0, 1.0);
}
`

const overlayFragmentShader = `
#version 410 core

in vec2 vTexcoord;

uniform sampler2D uMask;
uniform vec3 uColour;
uniform float uOpacity;

out vec4 outColour;

void main() {
    float coverage = texture(uMask, vTexcoord).r * uOpacity;
    outColour = vec4(uColour * coverage, coverage);
}
`

// Fullscreen triangle used to scale the offscreen target onto the window.
const blitVertexShader = `
#version 410 core

const vec2 positions[3] = vec2[](
    vec2(-1.0, -1.0),
    vec2( 3.0, -1.0),
    vec2(-1.0,  3.0)
);

out vec2 vTexcoord;

void main() {
    vec2 pos = positions[gl_VertexID];
    vTexcoord = pos * 0.5 + 0.5;
    gl_Position = vec4(pos, 0.0, 1.0);
}
`

const blitFragmentShader = `
#version 410 core

in vec2 vTexcoord;

uniform sampler2D uSource;

out vec4 outColour;

void main() {
    outColour = texture(uSource, vTexcoord);
}
`
