package emitter

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovanwin/statictoml/internal/ident"
	"github.com/vovanwin/statictoml/internal/model"
	"github.com/vovanwin/statictoml/internal/parser"
)

// defaults mirror what the driver resolves for a bare exported declaration.
func defaults() Options {
	return Options{PreferSlices: true, Exported: true}
}

func tree(t *testing.T, src string) *model.Value {
	t.Helper()
	v, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	return v
}

func emitBoth(t *testing.T, src, rootKey string, o Options) (string, string) {
	t.Helper()
	v := tree(t, src)
	types, err := Types(v, rootKey, o)
	require.NoError(t, err)
	value, err := Value(v, rootKey, o)
	require.NoError(t, err)
	return types, value
}

func TestEmitScalarTable(t *testing.T) {
	types, value := emitBoth(t, `
title = "x"
port = 8080
ratio = 2.5
on = true
`, "example_config", defaults())

	assert.Contains(t, types, "type ExampleConfig struct {")
	assert.Contains(t, types, "\tTitle ExampleConfigTitle\n")
	assert.Contains(t, types, "\tPort ExampleConfigPort\n")
	assert.Contains(t, types, "type ExampleConfigTitle = string\n")
	assert.Contains(t, types, "type ExampleConfigPort = int64\n")
	assert.Contains(t, types, "type ExampleConfigRatio = float64\n")
	assert.Contains(t, types, "type ExampleConfigOn = bool\n")

	assert.Equal(t, `ExampleConfig{
	Title: "x",
	Port: 8080,
	Ratio: 2.5,
	On: true,
}`, value)
}

func TestEmitNestedTables(t *testing.T) {
	types, value := emitBoth(t, `
[server]
host = "localhost"

[server.limits]
max = 10
`, "app", defaults())

	assert.Contains(t, types, "type App struct {")
	assert.Contains(t, types, "type AppServer struct {")
	assert.Contains(t, types, "type AppServerLimits struct {")
	assert.Contains(t, types, "type AppServerLimitsMax = int64\n")

	assert.Contains(t, value, "Server: AppServer{")
	assert.Contains(t, value, "Limits: AppServerLimits{")
	assert.Contains(t, value, "Max: 10,")
}

func TestEmitHomogeneousArray(t *testing.T) {
	types, value := emitBoth(t, `ports = [8000, 8001, 8002]`, "example_config", defaults())

	assert.Contains(t, types, "type ExampleConfigPorts = [3]ExampleConfigPortsValues\n")
	assert.Contains(t, types, "type ExampleConfigPortsValues = int64\n")
	assert.Contains(t, value, "Ports: ExampleConfigPorts{8000, 8001, 8002},")
}

func TestEmitHeterogeneousArray(t *testing.T) {
	types, value := emitBoth(t, `data = [["delta", "phi"], [3.14]]`, "example_config", defaults())

	assert.Contains(t, types, "type ExampleConfigData struct {")
	assert.Contains(t, types, "\tValues0 ExampleConfigDataValues0\n")
	assert.Contains(t, types, "\tValues1 ExampleConfigDataValues1\n")
	assert.Contains(t, types, "type ExampleConfigDataValues0 = [2]ExampleConfigDataValues0Values\n")
	assert.Contains(t, types, "type ExampleConfigDataValues0Values = string\n")
	assert.Contains(t, types, "type ExampleConfigDataValues1 = [1]ExampleConfigDataValues1Values\n")
	assert.Contains(t, types, "type ExampleConfigDataValues1Values = float64\n")

	assert.Contains(t, value, `ExampleConfigDataValues0{"delta", "phi"},`)
	assert.Contains(t, value, "ExampleConfigDataValues1{3.14},")
}

func TestEmitArrayOfTables(t *testing.T) {
	types, value := emitBoth(t, `
[[list]]
value = 123

[[list]]
value = 456
`, "example_config", defaults())

	assert.Contains(t, types, "type ExampleConfigList = [2]ExampleConfigListValues\n")
	assert.Contains(t, types, "type ExampleConfigListValues struct {")

	assert.Contains(t, value, "List: ExampleConfigList{")
	assert.Contains(t, value, "Value: 123,")
	assert.Contains(t, value, "Value: 456,")
}

func TestEmitPreferSlicesOff(t *testing.T) {
	o := defaults()
	o.PreferSlices = false
	types, value := emitBoth(t, `ports = [1, 2]`, "cfg", o)

	assert.Contains(t, types, "type CfgPorts struct {")
	assert.Contains(t, types, "\tValues0 CfgPortsValues0\n")
	assert.Contains(t, types, "\tValues1 CfgPortsValues1\n")
	assert.NotContains(t, types, "[2]")

	assert.Contains(t, value, "Ports: CfgPorts{1, 2},")
}

func TestEmitCowSlices(t *testing.T) {
	o := defaults()
	o.Cow = true
	types, _ := emitBoth(t, `ports = [1, 2]`, "cfg", o)

	assert.Contains(t, types, "type CfgPorts = []CfgPortsValues\n")
	assert.NotContains(t, types, "[2]CfgPortsValues")
}

func TestEmitEmptyArray(t *testing.T) {
	types, value := emitBoth(t, `empty = []`, "cfg", defaults())

	assert.Contains(t, types, "type CfgEmpty = [0]struct{}\n")
	assert.Contains(t, value, "Empty: CfgEmpty{},")
}

func TestEmitEmptyTable(t *testing.T) {
	types, value := emitBoth(t, `[nothing]`, "cfg", defaults())

	assert.Contains(t, types, "type CfgNothing struct{}\n")
	assert.Contains(t, value, "Nothing: CfgNothing{},")
}

func TestEmitValuesIdentRename(t *testing.T) {
	o := defaults()
	o.ValuesIdent = "items"
	types, _ := emitBoth(t, `
uniform = [1, 2]
mixed = [1, "x"]
`, "cfg", o)

	assert.Contains(t, types, "type CfgUniform = [2]CfgUniformItems\n")
	assert.Contains(t, types, "\tItems0 CfgMixedItems0\n")
	assert.NotContains(t, types, "Values")
}

func TestEmitAffixes(t *testing.T) {
	o := defaults()
	o.Prefix = "Gen"
	o.Suffix = "T"
	types, value := emitBoth(t, `
[server]
port = 1
`, "cfg", o)

	assert.Contains(t, types, "type GenCfgT struct {")
	assert.Contains(t, types, "\tServer GenCfgServerT\n")
	assert.Contains(t, types, "type GenCfgServerPortT = int64\n")
	assert.Contains(t, value, "Server: GenCfgServerT{")
}

func TestEmitUnexported(t *testing.T) {
	o := defaults()
	o.Exported = false
	types, value := emitBoth(t, `
[server]
port = 1
`, "cfg", o)

	// Type names are package private, field names stay exported so derive
	// tags keep working.
	assert.Contains(t, types, "type cfg struct {")
	assert.Contains(t, types, "\tServer cfgServer\n")
	assert.Contains(t, types, "type cfgServerPort = int64\n")
	assert.Contains(t, value, "Server: cfgServer{")
}

func TestEmitReservedWordKey(t *testing.T) {
	types, value := emitBoth(t, `
[entry]
type = "x"
map = "y"
`, "cfg", defaults())

	assert.Contains(t, types, "\tKind CfgEntryKind\n")
	assert.Contains(t, types, "\tMapping CfgEntryMapping\n")
	assert.NotContains(t, types, "CfgEntryType")
	assert.Contains(t, value, `Kind: "x",`)
	assert.Contains(t, value, `Mapping: "y",`)
}

func TestEmitDeriveTags(t *testing.T) {
	o := defaults()
	o.Derives = []string{"json", "yaml"}
	types, _ := emitBoth(t, `
[entry]
type = "x"
`, "cfg", o)

	// The tag carries the raw TOML key, not the shaped field name.
	assert.Contains(t, types, "\tKind CfgEntryKind `json:\"type\" yaml:\"type\"`\n")
	assert.Contains(t, types, "\tEntry CfgEntry `json:\"entry\" yaml:\"entry\"`\n")
}

func TestEmitFieldComments(t *testing.T) {
	types, _ := emitBoth(t, `
# The project title.
title = "x"
`, "cfg", defaults())

	assert.Contains(t, types, "\t// The project title.\n\tTitle CfgTitle\n")
}

func TestEmitDatetime(t *testing.T) {
	types, value := emitBoth(t, `ts = 1979-05-27T07:32:00-08:00`, "cfg", defaults())

	assert.Contains(t, types, "type CfgTs = string\n")
	assert.Contains(t, value, `Ts: "1979-05-27T07:32:00-08:00",`)
}

func TestEmitFloatLiterals(t *testing.T) {
	_, value := emitBoth(t, `
whole = 5.0
pos = inf
neg = -inf
undef = nan
`, "cfg", defaults())

	assert.Contains(t, value, "Whole: 5.0,")
	assert.Contains(t, value, "Pos: math.Inf(1),")
	assert.Contains(t, value, "Neg: math.Inf(-1),")
	assert.Contains(t, value, "Undef: math.NaN(),")
}

// Both emitters must reject the same bad key so that a failed generation
// never produces a type tree without its value or vice versa.
func TestEmitInvalidKeyParity(t *testing.T) {
	v := tree(t, `"???" = 1`)

	_, terr := Types(v, "cfg", defaults())
	_, verr := Value(v, "cfg", defaults())

	require.Error(t, terr)
	require.Error(t, verr)
	assert.True(t, errors.Is(terr, ident.ErrKeyInvalid))
	assert.True(t, errors.Is(verr, ident.ErrKeyInvalid))
	assert.Equal(t, terr.Error(), verr.Error())
}

// Flattening is not injective: distinct key paths can share a type name.
// Declaring the name twice would emit non-compiling Go, so the walk must
// refuse the document and say which paths clashed.
func TestTypesNameCollision(t *testing.T) {
	v := tree(t, `
[a_b]
c = 1

[a]
b_c = "x"
`)

	_, err := Types(v, "root", defaults())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNameCollision))
	assert.Contains(t, err.Error(), "`root.a_b.c`")
	assert.Contains(t, err.Error(), "`root.a.b_c`")
	assert.Contains(t, err.Error(), "`RootABC`")
}

// Repeated shapes must not trip the collision check: every element of a
// homogeneous array shares one representative type, declared once.
func TestTypesNoCollisionOnRepeatedShapes(t *testing.T) {
	types, _ := emitBoth(t, `
[[list]]
value = 1

[[list]]
value = 2
`, "root", defaults())

	assert.Equal(t, 1, strings.Count(types, "type RootListValues struct"))
}

func TestRootTypeName(t *testing.T) {
	name, err := RootTypeName("example_config", defaults())
	require.NoError(t, err)
	assert.Equal(t, "ExampleConfig", name)

	o := defaults()
	o.Prefix = "App"
	o.Exported = false
	name, err = RootTypeName("example_config", o)
	require.NoError(t, err)
	assert.Equal(t, "appExampleConfig", name)
}

func TestTypesDepthFirstOrder(t *testing.T) {
	types, _ := emitBoth(t, `
[a]
[a.b]
[c]
`, "root", defaults())

	// Parents precede children, siblings follow document order.
	ia := strings.Index(types, "type RootA struct")
	iab := strings.Index(types, "type RootAB struct")
	ic := strings.Index(types, "type RootC struct")
	iroot := strings.Index(types, "type Root struct")
	assert.True(t, iroot < ia && ia < iab && iab < ic)
}

func TestAutoDoc(t *testing.T) {
	lines := AutoDoc("configs/example.toml", "title = \"x\"\nport = 1\n")

	assert.Equal(t, []string{
		"",
		"Static inclusion of `configs/example.toml`.",
		"",
		"```toml",
		`title = "x"`,
		"port = 1",
		"```",
	}, lines)
}
