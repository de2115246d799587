package translator

import (
	"strings"
	"testing"

	"github.com/richinsley/shader2video/shader"
)

const plasma = `
void mainImage(out vec4 fragColor, in vec2 fragCoord) {
    vec2 uv = fragCoord / iResolution.xy;
    fragColor = vec4(uv, 0.5 + 0.5 * sin(iTime), 1.0);
}
`

func TestTranslateFragmentGLSL410(t *testing.T) {
	res, err := TranslateFragment(shader.GetFragmentShader(plasma), false)
	if err != nil {
		t.Fatalf("TranslateFragment: %v", err)
	}
	if !strings.Contains(res.Code, "#version 410") {
		t.Errorf("code is not GLSL 410:\n%s", res.Code)
	}
	for name, want := range map[string]string{"iTime": "_uiTime", "iResolution": "_uiResolution"} {
		if got := res.Uniforms[name]; got != want {
			t.Errorf("Uniforms[%q] = %q, want %q", name, got, want)
		}
		if !strings.Contains(res.Code, res.Uniforms[name]) {
			t.Errorf("code does not declare %s", res.Uniforms[name])
		}
	}
}

func TestTranslateFragmentESSL(t *testing.T) {
	res, err := TranslateFragment(shader.GetFragmentShader(plasma), true)
	if err != nil {
		t.Fatalf("TranslateFragment: %v", err)
	}
	if !strings.Contains(res.Code, "#version 300 es") {
		t.Errorf("code is not ESSL 3.00:\n%s", res.Code)
	}
	if res.Uniforms["iTime"] == "" {
		t.Error("iTime has no mapped name")
	}
}

func TestTranslateFragmentRejectsInvalidSource(t *testing.T) {
	src := shader.GetFragmentShader("void mainImage(out vec4 c, in vec2 p) { c = undefinedColour; }\n")
	if _, err := TranslateFragment(src, false); err == nil {
		t.Fatal("TranslateFragment accepted an undeclared identifier")
	}
}

func TestGetTranslatorIsShared(t *testing.T) {
	a, err := GetTranslator()
	if err != nil {
		t.Fatalf("GetTranslator: %v", err)
	}
	b, _ := GetTranslator()
	if a != b {
		t.Error("GetTranslator started a second translator")
	}
}
