package shader

import (
	"strings"
	"testing"
)

func TestIsShadertoySnippet(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{
			name: "mainImage only",
			src:  "void mainImage(out vec4 c, in vec2 p) { c = vec4(1.0); }",
			want: true,
		},
		{
			name: "full program",
			src:  "#version 330 core\nout vec4 c;\nvoid main() { c = vec4(1.0); }",
			want: false,
		},
		{
			name: "both defined",
			src:  "void mainImage(out vec4 c, in vec2 p) {}\nvoid main() {}",
			want: false,
		},
		{
			name: "main only in line comment",
			src:  "// void main() {}\nvoid mainImage(out vec4 c, in vec2 p) {}",
			want: true,
		},
		{
			name: "mainImage only in block comment",
			src:  "/* void mainImage( */\nvoid main() {}",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsShadertoySnippet(tt.src); got != tt.want {
				t.Errorf("IsShadertoySnippet = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetFragmentShaderWrapsUserCode(t *testing.T) {
	user := "void mainImage(out vec4 c, in vec2 p) { c = vec4(1.0, 0.0, 0.0, 1.0); }\n"
	src := GetFragmentShader(user)

	if !strings.HasPrefix(src, "#version 300 es") {
		t.Errorf("fragment does not start with the WebGL2 version line")
	}
	for _, want := range []string{"uniform vec3  iResolution;", "uniform float iTime;", user, "mainImage(fragColor, gl_FragCoord.xy);"} {
		if !strings.Contains(src, want) {
			t.Errorf("fragment missing %q", want)
		}
	}
	if strings.Index(src, user) > strings.Index(src, "void main(void)") {
		t.Error("user code must precede the main wrapper")
	}
}

func TestGenerateVertexShader(t *testing.T) {
	if !strings.HasPrefix(GenerateVertexShader(false), "#version 410 core") {
		t.Error("desktop vertex stage is not GLSL 410 core")
	}
	if !strings.HasPrefix(GenerateVertexShader(true), "#version 300 es") {
		t.Error("GLES vertex stage is not ESSL 300")
	}
}
