// SPDX-License-Identifier: GPL-2.0-or-later

package glrender

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"skelview/glh"
	"skelview/gpu"
)

// Shader is a program pair sharing one fragment stage. The basic program
// takes the model matrix as a uniform, the instanced one per instance.
type Shader struct {
	name    string
	basic   *glh.Program
	inst    *glh.Program
	current *glh.Program
	model   mgl32.Mat4
}

// NewShader compiles fragment with both vertex stages.
func NewShader(name, fragment string) (*Shader, error) {
	basic, err := glh.NewProgram(basicVertex, fragment)
	if err != nil {
		return nil, errors.Wrapf(err, "shader %s (basic)", name)
	}
	inst, err := glh.NewProgram(instancedVertex, fragment)
	if err != nil {
		return nil, errors.Wrapf(err, "shader %s (instanced)", name)
	}
	return &Shader{name: name, basic: basic, inst: inst, current: basic}, nil
}

// NewDefaultShader is the lit vertex color and diffuse texture shader.
func NewDefaultShader() (*Shader, error) {
	return NewShader("default", defaultFragment)
}

func (s *Shader) Name() string { return s.name }

func (s *Shader) Use(v gpu.Variant) {
	s.current = s.basic
	if v == gpu.Instanced {
		s.current = s.inst
	}
	s.current.Use()
}

func (s *Shader) SetMat4(name string, m mgl32.Mat4) {
	s.current.SetMat4(name, m)
	if name == "model" && s.current == s.basic {
		s.current.SetMat3("normalMatrix", glh.NormalMatrix(m))
	}
}

func (s *Shader) SetVec4(name string, v mgl32.Vec4) { s.current.SetVec4(name, v) }
func (s *Shader) SetVec3(name string, v mgl32.Vec3) { s.current.SetVec3(name, v) }
func (s *Shader) SetFloat(name string, f float32)   { s.current.SetFloat(name, f) }
func (s *Shader) SetInt(name string, i int32)       { s.current.SetInt(name, i) }

const basicVertex = `#version 460 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;
layout(location = 3) in vec4 aColor;

uniform mat4 model;
uniform mat3 normalMatrix;
uniform mat4 view;
uniform mat4 projection;

out vec3 vPos;
out vec3 vNormal;
out vec2 vUV;
out vec4 vColor;

void main() {
	vec4 world = model * vec4(aPos, 1.0);
	vPos = world.xyz;
	vNormal = normalMatrix * aNormal;
	vUV = aUV;
	vColor = aColor;
	gl_Position = projection * view * world;
}
`

const instancedVertex = `#version 460 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;
layout(location = 3) in vec4 aColor;
layout(location = 4) in mat4 aModel;

uniform mat4 view;
uniform mat4 projection;

out vec3 vPos;
out vec3 vNormal;
out vec2 vUV;
out vec4 vColor;

void main() {
	vec4 world = aModel * vec4(aPos, 1.0);
	vPos = world.xyz;
	vNormal = transpose(inverse(mat3(aModel))) * aNormal;
	vUV = aUV;
	vColor = aColor;
	gl_Position = projection * view * world;
}
`

const defaultFragment = `#version 460 core
#define MAX_LIGHTS 32

struct Light {
	int type;
	vec3 position;
	vec3 direction;
	vec3 color;
	float intensity;
	float range;
	float innerCone;
	float outerCone;
};

in vec3 vPos;
in vec3 vNormal;
in vec2 vUV;
in vec4 vColor;

uniform vec4 color;
uniform int uTextureSample;
uniform sampler2D utexture_diffuse1;
uniform int lightCount;
uniform Light lights[MAX_LIGHTS];

out vec4 fragColor;

vec3 shade(vec3 n, Light l) {
	vec3 dir;
	float att = 1.0;
	if (l.type == 0) {
		dir = -normalize(l.direction);
	} else {
		vec3 d = l.position - vPos;
		float dist = length(d);
		dir = d / max(dist, 1e-5);
		att = clamp(1.0 - dist / max(l.range, 1e-5), 0.0, 1.0);
		if (l.type == 2) {
			float c = dot(-dir, normalize(l.direction));
			float inner = cos(radians(l.innerCone));
			float outer = cos(radians(l.outerCone));
			att *= clamp((c - outer) / max(inner - outer, 1e-5), 0.0, 1.0);
		}
	}
	return l.color * l.intensity * att * max(dot(n, dir), 0.0);
}

void main() {
	vec4 base = color * vColor;
	if (uTextureSample == 1) {
		base *= texture(utexture_diffuse1, vUV);
	}
	vec3 n = normalize(vNormal);
	if (!gl_FrontFacing) {
		n = -n;
	}
	vec3 light = vec3(0.25);
	if (lightCount == 0) {
		light += vec3(0.75) * max(dot(n, normalize(vec3(0.3, 1.0, 0.5))), 0.0);
	}
	for (int i = 0; i < lightCount && i < MAX_LIGHTS; i++) {
		light += shade(n, lights[i]);
	}
	fragColor = vec4(base.rgb * light, base.a);
}
`
