package domain_test

import (
	"strings"
	"testing"

	"go.husk.sh/husk/internal/core/domain"
)

func TestVaultItem_Password(t *testing.T) {
	tests := []struct {
		name    string
		item    domain.VaultItem
		want    string
		wantErr bool
	}{
		{
			name: "bare password item",
			item: domain.VaultItem{
				UUID:    "abc123",
				Details: domain.VaultDetails{Password: "hunter2"},
			},
			want: "hunter2",
		},
		{
			name: "login item with password field",
			item: domain.VaultItem{
				UUID: "def456",
				Details: domain.VaultDetails{
					Fields: []domain.VaultField{
						{Designation: "username", Name: "username", Type: "T", Value: "alice"},
						{Designation: "password", Name: "password", Type: "P", Value: "s3cret"},
					},
				},
			},
			want: "s3cret",
		},
		{
			name: "bare password wins over fields",
			item: domain.VaultItem{
				Details: domain.VaultDetails{
					Password: "direct",
					Fields: []domain.VaultField{
						{Designation: "password", Value: "from-field"},
					},
				},
			},
			want: "direct",
		},
		{
			name: "login item without password field",
			item: domain.VaultItem{
				UUID: "ghi789",
				Details: domain.VaultDetails{
					Fields: []domain.VaultField{
						{Designation: "username", Value: "alice"},
					},
				},
			},
			wantErr: true,
		},
		{
			name: "empty password field does not count",
			item: domain.VaultItem{
				Details: domain.VaultDetails{
					Fields: []domain.VaultField{
						{Designation: "password", Value: ""},
					},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.item.Password()
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), domain.ErrVaultNoPassword.Error()) {
					t.Fatalf("expected ErrVaultNoPassword, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Password() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSession_EnvironSortedAndMutates(t *testing.T) {
	sess := domain.NewSession("id1", "rust-op-shell", map[string]string{
		"PATH": "/husk/store/a/bin:/usr/bin",
		"HOME": "/home/alice",
	})

	sess.Set("OP_SESSION_my", "tok")

	want := []string{
		"HOME=/home/alice",
		"OP_SESSION_my=tok",
		"PATH=/husk/store/a/bin:/usr/bin",
	}
	got := sess.Environ()
	if len(got) != len(want) {
		t.Fatalf("Environ() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Environ()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if entries := sess.Path(); len(entries) != 2 || entries[0] != "/husk/store/a/bin" {
		t.Errorf("Path() = %v", entries)
	}
}
