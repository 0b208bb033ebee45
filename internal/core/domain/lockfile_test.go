package domain_test

import (
	"testing"

	"go.husk.sh/husk/internal/core/domain"
)

func TestLockfile_Fresh(t *testing.T) {
	lock := &domain.Lockfile{
		Version:        domain.LockfileVersion,
		ManifestDigest: "00aabbccddeeff11",
		Platform:       domain.PlatformID("x86_64-linux"),
	}

	if !lock.Fresh("00aabbccddeeff11", "x86_64-linux") {
		t.Error("matching digest and platform should be fresh")
	}
	if lock.Fresh("1111111111111111", "x86_64-linux") {
		t.Error("changed manifest digest should be stale")
	}
	if lock.Fresh("00aabbccddeeff11", "aarch64-darwin") {
		t.Error("different platform should be stale")
	}

	lock.Version = domain.LockfileVersion + 1
	if lock.Fresh("00aabbccddeeff11", "x86_64-linux") {
		t.Error("unknown lockfile version should be stale")
	}
}

func TestLockedPackage_RoundTrip(t *testing.T) {
	ref := domain.NewPackageRef("cargo", "1.28.0", "/husk/store/77ab-cargo-1.28.0")
	locked := domain.LockPackage(ref)
	back := locked.Ref()

	if back != ref {
		t.Errorf("round trip changed ref: %+v != %+v", back, ref)
	}
}

func TestLockedToolchain_RoundTrip(t *testing.T) {
	tc := domain.ToolchainRef{
		Channel:  domain.Intern("1.28.0"),
		Compiler: domain.NewPackageRef("rustc", "1.28.0", "/husk/store/9f2k"),
		Builder:  domain.NewPackageRef("cargo", "1.28.0", "/husk/store/77ab"),
	}

	back := domain.LockToolchain(tc).Ref()
	if back != tc {
		t.Errorf("round trip changed toolchain: %+v != %+v", back, tc)
	}
}

func TestLockfile_LookupRequest(t *testing.T) {
	lock := &domain.Lockfile{
		Packages: map[string]domain.LockedPackage{
			"openssl":        {Name: "openssl", Version: "3.0.13", OutPath: "/husk/store/new"},
			"openssl@1.1.1w": {Name: "openssl", Version: "1.1.1w", OutPath: "/husk/store/old"},
		},
	}

	ref, ok := lock.LookupRequest(domain.PackageRequest{Name: "openssl", Version: "1.1.1w"})
	if !ok {
		t.Fatal("pinned request should resolve")
	}
	if ref.Version.String() != "1.1.1w" {
		t.Errorf("pinned lookup returned %s", ref.Version.String())
	}

	if _, ok := lock.LookupRequest(domain.PackageRequest{Name: "ripgrep"}); ok {
		t.Error("missing request should not resolve")
	}
}
