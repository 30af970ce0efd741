package merge

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/aretw0/mjmerge/pkg/diagnostics"
	"github.com/aretw0/mjmerge/pkg/mjcf"
	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const armModel = `<mujoco model="arm">
  <compiler angle="radian" meshdir="meshes"/>
  <size njmax="100" nconmax="50"/>
  <option timestep="0.002">
    <flag warmstart="enable"/>
  </option>
  <default>
    <geom friction="1 0.005 0.0001"/>
    <default class="arm">
      <joint damping="1"/>
      <default class="visual">
        <geom material="grey" mesh="link"/>
      </default>
    </default>
  </default>
  <visual>
    <quality shadowsize="4096"/>
  </visual>
  <asset>
    <texture name="grid" file="grid.png" type="2d"/>
    <material name="grey" texture="grid"/>
    <mesh name="link" file="link.stl"/>
    <hfield name="terrain" nrow="10" ncol="10"/>
    <skin name="cover" file="cover.skn">
      <bone body="link1" bindpos="0 0 0"/>
    </skin>
  </asset>
  <contact>
    <pair name="p" geom1="g1" geom2="g2"/>
    <exclude body1="base" body2="link1"/>
  </contact>
  <actuator>
    <motor name="m1" joint="j1" class="arm"/>
    <slidercrank cranksite="c" slidersite="s"/>
  </actuator>
  <sensor>
    <jointpos name="q1" joint="j1"/>
    <framepos objname="link1" objtype="body"/>
  </sensor>
  <equality>
    <weld body1="base"/>
  </equality>
  <worldbody>
    <body name="base" childclass="arm">
      <geom name="g1" class="visual"/>
      <body name="link1">
        <joint name="j1"/>
        <geom name="g2" mesh="link"/>
      </body>
    </body>
  </worldbody>
</mujoco>`

const boxModel = `<mujoco model="box">
  <compiler angle="degree"/>
  <size njmax="20" nkey="1"/>
  <option timestep="0.002" integrator="RK4">
    <flag warmstart="disable"/>
  </option>
  <visual>
    <quality shadowsize="2048" offsamples="4"/>
    <map znear="0.01"/>
  </visual>
  <asset>
    <mesh name="link" file="/abs/box.stl"/>
  </asset>
  <worldbody>
    <body name="base">
      <freejoint name="j1"/>
      <geom name="g1" type="box" size="0.1 0.1 0.1"/>
    </body>
  </worldbody>
</mujoco>`

func mergeBoth(t *testing.T, sink diagnostics.Sink) (*etree.Element, string, string) {
	t.Helper()
	dir := t.TempDir()
	arm := writeModel(t, dir, filepath.Join("arm", "arm.xml"), armModel)
	box := writeModel(t, dir, filepath.Join("box", "box.xml"), boxModel)

	scene := newScene()
	m := New(sink, nil)
	require.NoError(t, m.MergeFile("arm", arm, scene))
	require.NoError(t, m.MergeFile("box", box, scene))
	return scene, arm, box
}

func TestMergeModel_SectionsLayout(t *testing.T) {
	scene, _, _ := mergeBoth(t, nil)

	var tags []string
	for _, child := range scene.ChildElements() {
		tags = append(tags, child.Tag)
	}
	assert.Equal(t, Sections(), tags, "one child per section, in merge order")
	assert.Nil(t, scene.SelectElement("equality"), "equality is not carried over")
}

func TestMergeModel_SharedSettings(t *testing.T) {
	rec := &diagnostics.Recorder{}
	scene, _, box := mergeBoth(t, rec)

	compiler := scene.SelectElement("compiler")
	assert.Equal(t, "radian", compiler.SelectAttrValue("angle", ""))
	assert.Nil(t, compiler.SelectAttr("meshdir"), "asset directories are resolved, not merged")

	option := scene.SelectElement("option")
	assert.Equal(t, "RK4", option.SelectAttrValue("integrator", ""))
	assert.Equal(t, "enable", option.SelectElement("flag").SelectAttrValue("warmstart", ""))

	quality := scene.FindElement("visual/quality")
	assert.Equal(t, "4096", quality.SelectAttrValue("shadowsize", ""))
	assert.Equal(t, "4", quality.SelectAttrValue("offsamples", ""))
	assert.Equal(t, "0.01", scene.FindElement("visual/map").SelectAttrValue("znear", ""))

	size := scene.SelectElement("size")
	assert.Equal(t, "120", size.SelectAttrValue("njmax", ""))
	assert.Equal(t, "50", size.SelectAttrValue("nconmax", ""))
	assert.Equal(t, "1", size.SelectAttrValue("nkey", ""))

	want := []diagnostics.Conflict{
		{Section: "compiler", Attribute: "angle", File: box, Incoming: "degree", Retained: "radian"},
		{Section: "option/flag", Attribute: "warmstart", File: box, Incoming: "disable", Retained: "enable"},
		{Section: "visual/quality", Attribute: "shadowsize", File: box, Incoming: "2048", Retained: "4096"},
	}
	if diff := cmp.Diff(want, rec.Conflicts()); diff != "" {
		t.Errorf("conflicts mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeModel_Defaults(t *testing.T) {
	scene, _, _ := mergeBoth(t, nil)
	def := scene.SelectElement("default")

	assert.Equal(t, "1 0.005 0.0001", def.SelectElement("geom").SelectAttrValue("friction", ""))

	arm := def.SelectElement("default")
	require.NotNil(t, arm)
	assert.Equal(t, "arm_arm", arm.SelectAttrValue("class", ""))
	nested := arm.SelectElement("default")
	assert.Equal(t, "arm_visual", nested.SelectAttrValue("class", ""))
	assert.Equal(t, "arm_grey", nested.SelectElement("geom").SelectAttrValue("material", ""))
	assert.Equal(t, "arm_link", nested.SelectElement("geom").SelectAttrValue("mesh", ""))
}

func TestMergeModel_DefaultConflicts(t *testing.T) {
	rec := &diagnostics.Recorder{}
	m := New(rec, nil)
	scene := newScene()

	first := element(t, `<mujoco><default><geom friction="1 0.005 0.0001" condim="3"/></default></mujoco>`)
	second := element(t, `<mujoco><default><geom friction="0.5 0.005 0.0001" condim="3" margin="0.01"/></default></mujoco>`)
	require.NoError(t, m.MergeModel("a", "/models/a.xml", first, scene))
	require.NoError(t, m.MergeModel("b", "/models/b.xml", second, scene))

	geom := scene.FindElement("default/geom")
	require.NotNil(t, geom)
	assert.Equal(t, "1 0.005 0.0001", geom.SelectAttrValue("friction", ""), "first value prevails")
	assert.Equal(t, "3", geom.SelectAttrValue("condim", ""))
	assert.Equal(t, "0.01", geom.SelectAttrValue("margin", ""), "missing attributes are added")
	assert.Len(t, scene.FindElements("default/geom"), 1)

	want := []diagnostics.Conflict{
		{Section: "default/geom", Attribute: "friction", File: "/models/b.xml", Incoming: "0.5 0.005 0.0001", Retained: "1 0.005 0.0001"},
	}
	if diff := cmp.Diff(want, rec.Conflicts()); diff != "" {
		t.Errorf("conflicts mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeModel_Assets(t *testing.T) {
	scene, arm, _ := mergeBoth(t, nil)
	asset := scene.SelectElement("asset")
	armDir := filepath.Dir(arm)

	var order []string
	for _, el := range asset.ChildElements() {
		order = append(order, el.Tag+":"+el.SelectAttrValue("name", ""))
	}
	assert.Equal(t, []string{
		"hfield:arm_terrain",
		"skin:arm_cover",
		"material:arm_grey",
		"texture:arm_grid",
		"mesh:arm_link",
		"mesh:box_link",
	}, order)

	skin := asset.SelectElement("skin")
	assert.Equal(t, filepath.Join(armDir, "meshes", "cover.skn"), skin.SelectAttrValue("file", ""))
	assert.Equal(t, "arm_link1", skin.SelectElement("bone").SelectAttrValue("body", ""))

	assert.Equal(t, "arm_grid", asset.SelectElement("material").SelectAttrValue("texture", ""))
	assert.Equal(t, filepath.Join(armDir, "grid.png"), asset.SelectElement("texture").SelectAttrValue("file", ""),
		"texture directory falls back to the model directory")

	meshes := asset.SelectElements("mesh")
	assert.Equal(t, filepath.Join(armDir, "meshes", "link.stl"), meshes[0].SelectAttrValue("file", ""))
	assert.Equal(t, "/abs/box.stl", meshes[1].SelectAttrValue("file", ""))
}

func TestMergeModel_ContactActuatorSensor(t *testing.T) {
	scene, _, _ := mergeBoth(t, nil)

	pair := scene.FindElement("contact/pair")
	assert.Equal(t, "arm_p", pair.SelectAttrValue("name", ""))
	assert.Equal(t, "arm_g1", pair.SelectAttrValue("geom1", ""))
	assert.Equal(t, "arm_g2", pair.SelectAttrValue("geom2", ""))
	exclude := scene.FindElement("contact/exclude")
	assert.Equal(t, "arm_base", exclude.SelectAttrValue("body1", ""))
	assert.Equal(t, "arm_link1", exclude.SelectAttrValue("body2", ""))

	motor := scene.FindElement("actuator/motor")
	assert.Equal(t, "arm_m1", motor.SelectAttrValue("name", ""))
	assert.Equal(t, "arm_j1", motor.SelectAttrValue("joint", ""))
	assert.Equal(t, "arm_arm", motor.SelectAttrValue("class", ""))
	crank := scene.FindElement("actuator/slidercrank")
	assert.Equal(t, "arm_c", crank.SelectAttrValue("cranksite", ""))
	assert.Equal(t, "arm_s", crank.SelectAttrValue("slidersite", ""))

	assert.Equal(t, "arm_j1", scene.FindElement("sensor/jointpos").SelectAttrValue("joint", ""))
	framepos := scene.FindElement("sensor/framepos")
	assert.Equal(t, "arm_link1", framepos.SelectAttrValue("objname", ""))
	assert.Equal(t, "body", framepos.SelectAttrValue("objtype", ""))
}

func TestMergeModel_WorldbodyNamespaces(t *testing.T) {
	scene, _, _ := mergeBoth(t, nil)
	bodies := scene.FindElements("worldbody/body")
	require.Len(t, bodies, 2)

	assert.Equal(t, "arm_base", bodies[0].SelectAttrValue("name", ""))
	assert.Equal(t, "arm_arm", bodies[0].SelectAttrValue("childclass", ""))
	assert.Equal(t, "arm_visual", bodies[0].SelectElement("geom").SelectAttrValue("class", ""))
	assert.Equal(t, "arm_j1", bodies[0].FindElement("body/joint").SelectAttrValue("name", ""))
	assert.Equal(t, "arm_link", bodies[0].FindElement("body/geom").SelectAttrValue("mesh", ""))

	assert.Equal(t, "box_base", bodies[1].SelectAttrValue("name", ""))
	assert.Equal(t, "box_j1", bodies[1].SelectElement("freejoint").SelectAttrValue("name", ""))
	assert.Equal(t, "box_g1", bodies[1].SelectElement("geom").SelectAttrValue("name", ""))
}

func TestMergeModel_InputNotMutated(t *testing.T) {
	in, err := mjcf.Parse("arm.xml", []byte(armModel))
	require.NoError(t, err)
	before := in.Copy()

	scene := newScene()
	require.NoError(t, New(nil, nil).MergeModel("arm", "/models/arm.xml", in, scene))
	// mutating the scene must not reach back into the input
	scene.FindElement("worldbody/body").CreateAttr("name", "changed")

	beforeDoc, inDoc := etree.NewDocument(), etree.NewDocument()
	beforeDoc.SetRoot(before)
	inDoc.SetRoot(in.Copy())
	want, err := beforeDoc.WriteToString()
	require.NoError(t, err)
	got, err := inDoc.WriteToString()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMergeFile_Errors(t *testing.T) {
	dir := t.TempDir()
	m := New(nil, nil)

	t.Run("missing file", func(t *testing.T) {
		err := m.MergeFile("r", filepath.Join(dir, "nope.xml"), newScene())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope.xml")
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeModel(t, dir, "bad.xml", `<mujoco><worldbody></mujoco>`)
		err := m.MergeFile("r", path, newScene())
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("wrong root", func(t *testing.T) {
		path := writeModel(t, dir, "urdf.xml", `<robot name="r"/>`)
		err := m.MergeFile("r", path, newScene())
		require.Error(t, err)
		assert.True(t, errors.Is(err, mjcf.ErrMissingRoot))
		assert.Contains(t, err.Error(), path)
	})
}
