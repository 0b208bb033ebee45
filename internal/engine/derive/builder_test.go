package derive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.husk.sh/husk/internal/core/domain"
	"go.husk.sh/husk/internal/engine/derive"
	"go.trai.ch/zerr"
)

func ref(name, version string) domain.PackageRef {
	return domain.NewPackageRef(name, version, "/husk/store/"+name+"-"+version)
}

func toolchain() domain.ToolchainRef {
	return domain.ToolchainRef{
		Channel:  domain.Intern("stable-1.28"),
		Compiler: ref("rustc", "1.28.0"),
		Builder:  ref("cargo", "1.28.0"),
	}
}

func names(inputs []domain.PackageRef) []string {
	out := make([]string, len(inputs))
	for i, in := range inputs {
		out[i] = in.Name.String()
	}
	return out
}

func TestBuild_OrdersInputs(t *testing.T) {
	desc, err := derive.Build(derive.Request{
		Name:      "api",
		Platform:  "x86_64-linux",
		Base:      []domain.PackageRef{ref("openssl", "1.1.1w"), ref("pkg-config", "0.29.2")},
		Toolchain: toolchain(),
		Conditionals: []domain.ConditionalInput{
			{When: domain.DarwinOnly, Ref: ref("libiconv", "1.17")},
			{When: domain.LinuxOnly, Ref: ref("patchelf", "0.18.0")},
			{When: domain.AnyPlatform, Ref: ref("ripgrep", "13.0.0")},
		},
		Hook: domain.DefaultHookRule(),
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"openssl", "pkg-config", "rustc", "cargo", "patchelf", "ripgrep"},
		names(desc.BuildInputs),
	)
	assert.Equal(t, "api", desc.Name.String())
	assert.Equal(t, domain.PlatformID("x86_64-linux"), desc.Platform)
}

func TestBuild_KeepsDuplicates(t *testing.T) {
	dup := ref("openssl", "1.1.1w")
	desc, err := derive.Build(derive.Request{
		Name:      "api",
		Platform:  "aarch64-darwin",
		Base:      []domain.PackageRef{dup},
		Toolchain: toolchain(),
		Conditionals: []domain.ConditionalInput{
			{When: domain.DarwinOnly, Ref: dup},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"openssl", "rustc", "cargo", "openssl"}, names(desc.BuildInputs))
}

func TestBuild_ConditionalDeclarationOrderWins(t *testing.T) {
	desc, err := derive.Build(derive.Request{
		Name:      "api",
		Platform:  "aarch64-darwin",
		Toolchain: toolchain(),
		Conditionals: []domain.ConditionalInput{
			{When: domain.AnyPlatform, Ref: ref("b-second", "1")},
			{When: domain.DarwinOnly, Ref: ref("a-first", "1")},
		},
	})
	require.NoError(t, err)

	// Declaration order, not name order.
	assert.Equal(t, []string{"rustc", "cargo", "b-second", "a-first"}, names(desc.BuildInputs))
}

func TestBuild_SkipsNonMatchingConditionals(t *testing.T) {
	desc, err := derive.Build(derive.Request{
		Name:      "api",
		Platform:  "x86_64-linux",
		Toolchain: toolchain(),
		Conditionals: []domain.ConditionalInput{
			{When: domain.DarwinOnly, Ref: ref("libiconv", "1.17")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"rustc", "cargo"}, names(desc.BuildInputs))
}

func TestBuild_MissingCompiler(t *testing.T) {
	_, err := derive.Build(derive.Request{
		Name:     "api",
		Platform: "x86_64-linux",
		Toolchain: domain.ToolchainRef{
			Channel: domain.Intern("stable-1.28"),
			Builder: ref("cargo", "1.28.0"),
		},
	})
	require.ErrorContains(t, err, domain.ErrMissingToolchainBinding.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "compiler", zErr.Metadata()["component"])
}

func TestBuild_MissingBuilder(t *testing.T) {
	_, err := derive.Build(derive.Request{
		Name:     "api",
		Platform: "x86_64-linux",
		Toolchain: domain.ToolchainRef{
			Channel:  domain.Intern("stable-1.28"),
			Compiler: ref("rustc", "1.28.0"),
		},
	})
	require.ErrorContains(t, err, domain.ErrMissingToolchainBinding.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "builder", zErr.Metadata()["component"])
}

func TestBuild_DefaultsHookRule(t *testing.T) {
	desc, err := derive.Build(derive.Request{
		Name:      "api",
		Platform:  "x86_64-linux",
		Toolchain: toolchain(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultHookRule(), desc.Hook)
}

func TestBuild_CarriesHookScript(t *testing.T) {
	desc, err := derive.Build(derive.Request{
		Name:       "api",
		Platform:   "x86_64-linux",
		Toolchain:  toolchain(),
		Hook:       domain.HookRule{Command: "aws", EvalArg: "login"},
		HookScript: "export FOO=bar",
	})
	require.NoError(t, err)

	assert.Equal(t, "aws", desc.Hook.Command)
	assert.Equal(t, "login", desc.Hook.EvalArg)
	assert.Equal(t, "export FOO=bar", desc.HookScript)
}
