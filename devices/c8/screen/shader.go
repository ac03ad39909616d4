package screen

const vertex = `
#version 420

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}
`

const fragment = `
#version 420

// colors[0] is used for unlit pixels, colors[1] for lit pixels.
uniform vec4 colors[2];

layout (binding = 0) uniform sampler2D pixels;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    // Lit pixels are opaque white, unlit pixels are transparent black.
    float lit = texture(pixels, fragTexCoord).a;
    outputColor = mix(colors[0], colors[1], lit);
}
`
