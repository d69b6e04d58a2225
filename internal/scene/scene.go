package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"spincube/internal/config"
	"spincube/internal/envmap"
	"spincube/internal/logger"
)

const (
	cameraDistance = 6
	baseFovy       = 45
	skyboxScale    = 100
	// backdropLod is the mip level the background samples, softer than the reflections.
	backdropLod = 1.5
	// envIntensity scales the metallic reflection.
	envIntensity = 1.2
)

// Scene draws the cube and the sky backdrop with raylib. It implements frame.Cube,
// interaction.HitTester and interaction.Resizer. GPU resources are created on the first
// Draw, after the window and GL context exist.
type Scene struct {
	Camera rl.Camera3D
	cfg    *config.Config
	log    *logger.Logger

	rotation rl.Vector3
	scale    float32
	tint     [3]float32

	loaded     bool
	cubeMesh   rl.Mesh
	cubeMtl    rl.Material
	cubeLocs   cubeLocations
	skyMesh    rl.Mesh
	skyMtl     rl.Material
	skyLocs    skyLocations
	envTex     rl.Texture2D
	envVersion float64
}

type cubeLocations struct {
	envMap, cameraPos, tint, glass, intensity int32
}

type skyLocations struct {
	envMap, cameraPos, lod int32
}

// New returns a scene with a perspective camera looking at the cube from +Z.
func New(cfg *config.Config, log *logger.Logger) *Scene {
	s := &Scene{cfg: cfg, log: log, scale: 1}
	s.Camera.Position = rl.NewVector3(0, 0, cameraDistance)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = baseFovy
	s.Camera.Projection = rl.CameraPerspective
	s.SetColor(config.Color(cfg.CubeColor))
	return s
}

func (s *Scene) SetRotation(x, y, z float64) {
	s.rotation = rl.NewVector3(float32(x), float32(y), float32(z))
}

func (s *Scene) SetScale(v float64) {
	s.scale = float32(v)
}

func (s *Scene) SetColor(c colorful.Color) {
	c = c.Clamped()
	s.tint = [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

// HitCube casts a ray from screen position (x, y) against the transformed cube mesh.
func (s *Scene) HitCube(x, y float64) bool {
	if !s.loaded {
		return false
	}
	ray := rl.GetScreenToWorldRay(rl.NewVector2(float32(x), float32(y)), s.Camera)
	return rl.GetRayCollisionMesh(ray, s.cubeMesh, s.transform()).Hit
}

// Resize widens the vertical field of view on portrait windows so the cube keeps
// the horizontal extent it has on a square window.
func (s *Scene) Resize(width, height int) {
	aspect := float32(width) / float32(height)
	if aspect >= 1 {
		s.Camera.Fovy = baseFovy
		return
	}
	half := baseFovy * 0.5 * math32.Pi / 180
	s.Camera.Fovy = 2 * math32.Atan(math32.Tan(half)/aspect) * 180 / math32.Pi
}

// UploadEnvironment replaces the environment texture with m and its mip chain.
func (s *Scene) UploadEnvironment(m *envmap.Map) {
	if m == nil || len(m.Levels) == 0 || m.Time < s.envVersion {
		return
	}
	base := m.Base().Bounds()
	size := 0
	for _, l := range m.Levels {
		size += len(l.Pix)
	}
	data := make([]byte, 0, size)
	for _, l := range m.Levels {
		data = append(data, l.Pix...)
	}
	img := rl.NewImage(data, int32(base.Dx()), int32(base.Dy()), int32(len(m.Levels)), rl.UncompressedR8g8b8a8)
	tex := rl.LoadTextureFromImage(img)
	if !rl.IsTextureValid(tex) {
		s.log.Log("scene: environment texture upload failed")
		return
	}
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	if rl.IsTextureValid(s.envTex) {
		rl.UnloadTexture(s.envTex)
	}
	s.envTex = tex
	s.envVersion = m.Time
}

func (s *Scene) transform() rl.Matrix {
	size := float32(s.cfg.CubeSize) * s.scale
	return rl.MatrixMultiply(rl.MatrixScale(size, size, size), rl.MatrixRotateXYZ(s.rotation))
}

func (s *Scene) ensureLoaded() bool {
	if s.loaded {
		return true
	}
	cube := rl.LoadShaderFromMemory(cubeVS, cubeFS)
	sky := rl.LoadShaderFromMemory(skyVS, skyFS)
	if !rl.IsShaderValid(cube) || !rl.IsShaderValid(sky) {
		return false
	}
	s.cubeMesh = rl.GenMeshCube(1, 1, 1)
	s.cubeMtl = rl.LoadMaterialDefault()
	s.cubeMtl.Shader = cube
	s.cubeLocs = cubeLocations{
		envMap:    rl.GetShaderLocation(cube, "envMap"),
		cameraPos: rl.GetShaderLocation(cube, "cameraPosition"),
		tint:      rl.GetShaderLocation(cube, "tint"),
		glass:     rl.GetShaderLocation(cube, "glass"),
		intensity: rl.GetShaderLocation(cube, "envIntensity"),
	}

	s.skyMesh = rl.GenMeshCube(1, 1, 1)
	s.skyMtl = rl.LoadMaterialDefault()
	s.skyMtl.Shader = sky
	s.skyLocs = skyLocations{
		envMap:    rl.GetShaderLocation(sky, "envMap"),
		cameraPos: rl.GetShaderLocation(sky, "cameraPosition"),
		lod:       rl.GetShaderLocation(sky, "lod"),
	}
	s.loaded = true
	return true
}

// Draw renders the backdrop then the cube. Nothing is drawn until an environment map arrives.
func (s *Scene) Draw() {
	if !s.ensureLoaded() || !rl.IsTextureValid(s.envTex) {
		return
	}
	rl.BeginMode3D(s.Camera)
	s.drawBackdrop()
	s.drawCube()
	rl.EndMode3D()
}

func (s *Scene) drawBackdrop() {
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	pos := s.Camera.Position
	transform := rl.MatrixMultiply(rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale), rl.MatrixTranslate(pos.X, pos.Y, pos.Z))
	sh := s.skyMtl.Shader
	rl.SetShaderValue(sh, s.skyLocs.cameraPos, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, s.skyLocs.lod, []float32{backdropLod}, rl.ShaderUniformFloat)
	rl.SetShaderValueTexture(sh, s.skyLocs.envMap, s.envTex)
	rl.DrawMesh(s.skyMesh, s.skyMtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

func (s *Scene) drawCube() {
	glass := float32(0)
	if s.cfg.UseGlassMaterial {
		glass = 1
	}
	pos := s.Camera.Position
	sh := s.cubeMtl.Shader
	rl.SetShaderValue(sh, s.cubeLocs.cameraPos, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, s.cubeLocs.tint, s.tint[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, s.cubeLocs.glass, []float32{glass}, rl.ShaderUniformFloat)
	rl.SetShaderValue(sh, s.cubeLocs.intensity, []float32{envIntensity}, rl.ShaderUniformFloat)
	rl.SetShaderValueTexture(sh, s.cubeLocs.envMap, s.envTex)
	rl.DrawMesh(s.cubeMesh, s.cubeMtl, s.transform())
}

// Unload releases GPU resources. Call before the window closes.
func (s *Scene) Unload() {
	if rl.IsTextureValid(s.envTex) {
		rl.UnloadTexture(s.envTex)
	}
	if !s.loaded {
		return
	}
	rl.UnloadShader(s.cubeMtl.Shader)
	rl.UnloadShader(s.skyMtl.Shader)
	rl.UnloadMesh(&s.cubeMesh)
	rl.UnloadMesh(&s.skyMesh)
	s.loaded = false
}
