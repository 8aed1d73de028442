package gfx

// WebGLSources are GLSL ES 1.00 programs for a WebGL 1 context.
var WebGLSources = Sources{
	Vertex: `attribute vec4 aVertexPosition;
void main() {
	gl_Position = aVertexPosition;
}
`,
	Fragment: `precision mediump float;
uniform vec4 uColor;
void main() {
	gl_FragColor = uColor;
}
`,
}

// CoreSources are GLSL 330 core programs for a desktop core-profile context.
var CoreSources = Sources{
	Vertex: `#version 330 core
in vec2 aVertexPosition;
void main() {
	gl_Position = vec4(aVertexPosition, 0.0, 1.0);
}
`,
	Fragment: `#version 330 core
uniform vec4 uColor;
out vec4 fragColor;
void main() {
	fragColor = uColor;
}
`,
}
