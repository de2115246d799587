package shader

import (
	"regexp"
	"strings"
)

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// GenerateVertexShader returns the fixed pass-through quad stage.
func GenerateVertexShader(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

// ────────────────────── Dynamic preamble / user code glue ──────────────────────

// GeneratePreamble declares the uniforms the renderer feeds a Shadertoy
// snippet. It targets WebGL2 so the translator can lower it to any dialect.
func GeneratePreamble() string {
	return `#version 300 es
precision highp float;
precision highp int;

#define HW_PERFORMANCE 1

uniform vec3  iResolution;
uniform float iTime;
uniform float iTimeDelta;
uniform float iFrameRate;
uniform int   iFrame;
uniform vec4  iMouse;

out vec4 fragColor;

#define FAST_TANH_BODY(x) ((x) * (27.0 + (x)*(x)) / (27.0 + 9.0*(x)*(x)))
float fast_tanh(float x) { return FAST_TANH_BODY(x); }
vec2  fast_tanh(vec2  x) { return FAST_TANH_BODY(x); }
vec3  fast_tanh(vec3  x) { return FAST_TANH_BODY(x); }
vec4  fast_tanh(vec4  x) { return FAST_TANH_BODY(x); }
#define tanh fast_tanh
`
}

func GetMain() string {
	return `
void main(void)
{
    mainImage(fragColor, gl_FragCoord.xy);
}
`
}

// GetFragmentShader combines preamble + user code + wrapper.
func GetFragmentShader(user string) string {
	return GeneratePreamble() + user + GetMain()
}

var (
	mainImageRe = regexp.MustCompile(`\bvoid\s+mainImage\s*\(`)
	mainRe      = regexp.MustCompile(`\bvoid\s+main\s*\(`)
)

// IsShadertoySnippet reports whether source is a bare Shadertoy image pass:
// it defines mainImage and leaves main to the wrapper.
func IsShadertoySnippet(source string) bool {
	source = stripComments(source)
	return mainImageRe.MatchString(source) && !mainRe.MatchString(source)
}

func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		if i+1 < len(src) && src[i] == '/' && src[i+1] == '/' {
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
			continue
		}
		if i+1 < len(src) && src[i] == '/' && src[i+1] == '*' {
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				break
			}
			i += end + 3
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(src[i])
	}
	return b.String()
}
