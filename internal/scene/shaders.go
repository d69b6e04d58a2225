package scene

// Both shaders map a world direction to equirectangular UVs the same way the envmap
// generator lays out its image: longitude across, north pole on the first row.
const equirectUV = `
const float PI = 3.14159265359;
vec2 equirect(vec3 d) {
  float lon = atan(d.z, d.x);
  float lat = asin(clamp(d.y, -1.0, 1.0));
  return vec2(lon / (2.0 * PI) + 0.5, 0.5 - lat / PI);
}
`

const (
	skyVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	skyFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D envMap;
uniform vec3 cameraPosition;
uniform float lod;
` + equirectUV + `
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  finalColor = vec4(textureLod(envMap, equirect(dir), lod).rgb, 1.0);
}
`

	cubeVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragWorldPos;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  fragNormal = normalize((matNormal * vec4(vertexNormal, 0.0)).xyz);
  gl_Position = matProjection * matView * worldPos;
}
`
	// glass = 0 gives a tinted mirror; glass = 1 refracts the sky and adds a fresnel rim.
	cubeFS = `#version 330
in vec3 fragWorldPos;
in vec3 fragNormal;
out vec4 finalColor;
uniform sampler2D envMap;
uniform vec3 cameraPosition;
uniform vec3 tint;
uniform float glass;
uniform float envIntensity;
` + equirectUV + `
void main() {
  vec3 v = normalize(fragWorldPos - cameraPosition);
  vec3 n = normalize(fragNormal);
  vec3 refl = texture(envMap, equirect(reflect(v, n))).rgb;
  vec3 refr = texture(envMap, equirect(refract(v, n, 1.0 / 1.5))).rgb;
  float fresnel = pow(1.0 - max(dot(-v, n), 0.0), 3.0);
  vec3 metal = refl * tint * envIntensity;
  vec3 clear = mix(refr * tint, refl, 0.1 + 0.9 * fresnel);
  finalColor = vec4(mix(metal, clear, glass), 1.0);
}
`
)
