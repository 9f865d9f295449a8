package distro

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProviderRootfs(t *testing.T) {
	for _, id := range List() {
		p, err := Get(id)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", id, err)
		}

		for _, arch := range p.SupportedArchs() {
			t.Run(fmt.Sprintf("%s/%s", id, arch), func(t *testing.T) {
				rootfs, err := p.Rootfs(arch)
				if err != nil {
					t.Fatalf("Rootfs(%q) failed: %v", arch, err)
				}
				if !strings.HasPrefix(rootfs.URL, "https://") {
					t.Errorf("URL should be https, got %q", rootfs.URL)
				}
				if !strings.HasSuffix(rootfs.URL, "/"+rootfs.Filename) {
					t.Errorf("URL %q should end with filename %q", rootfs.URL, rootfs.Filename)
				}
				if rootfs.SizeMB <= 0 {
					t.Errorf("SizeMB should be positive, got %d", rootfs.SizeMB)
				}
			})
		}
	}
}

func TestProviderRootfsKnownURLs(t *testing.T) {
	tests := []struct {
		id       ID
		arch     Arch
		url      string
		filename string
	}{
		{
			Alpine, ArchAMD64,
			"https://dl-cdn.alpinelinux.org/alpine/v3.19/releases/x86_64/alpine-minirootfs-3.19.0-x86_64.tar.gz",
			"alpine-minirootfs-3.19.0-x86_64.tar.gz",
		},
		{
			Alpine, ArchARM64,
			"https://dl-cdn.alpinelinux.org/alpine/v3.19/releases/aarch64/alpine-minirootfs-3.19.0-aarch64.tar.gz",
			"alpine-minirootfs-3.19.0-aarch64.tar.gz",
		},
		{
			Ubuntu, ArchAMD64,
			"https://cloud-images.ubuntu.com/minimal/releases/jammy/release/ubuntu-22.04-minimal-cloudimg-amd64-root.tar.xz",
			"ubuntu-22.04-minimal-cloudimg-amd64-root.tar.xz",
		},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.id, tt.arch), func(t *testing.T) {
			p, err := Get(tt.id)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", tt.id, err)
			}
			rootfs, err := p.Rootfs(tt.arch)
			if err != nil {
				t.Fatalf("Rootfs failed: %v", err)
			}
			if rootfs.URL != tt.url {
				t.Errorf("URL = %q, want %q", rootfs.URL, tt.url)
			}
			if rootfs.Filename != tt.filename {
				t.Errorf("Filename = %q, want %q", rootfs.Filename, tt.filename)
			}
		})
	}
}

func TestProviderRootfsUnsupportedArch(t *testing.T) {
	for _, p := range ListProviders() {
		t.Run(string(p.ID()), func(t *testing.T) {
			_, err := p.Rootfs(Arch("riscv64"))
			if err == nil {
				t.Fatal("expected error for unsupported arch")
			}
			var archErr *ErrUnsupportedArch
			if !errors.As(err, &archErr) {
				t.Fatalf("error should be *ErrUnsupportedArch, got %T", err)
			}
			if archErr.Distro != p.ID() {
				t.Errorf("ErrUnsupportedArch.Distro = %q, want %q", archErr.Distro, p.ID())
			}
		})
	}
}

func TestProviderProvisioning(t *testing.T) {
	tests := []struct {
		id         ID
		pkgManager string
	}{
		{Alpine, "apk "},
		{Ubuntu, "apt-get "},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			p, err := Get(tt.id)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", tt.id, err)
			}
			cmds := p.Provisioning()
			if len(cmds) != 4 {
				t.Fatalf("Provisioning() returned %d commands, want 4", len(cmds))
			}
			if !strings.HasPrefix(cmds[0], tt.pkgManager) || !strings.HasSuffix(cmds[0], "update") {
				t.Errorf("first command should refresh the package index, got %q", cmds[0])
			}
			if !strings.Contains(cmds[1], "python3") {
				t.Errorf("second command should install python3, got %q", cmds[1])
			}
			if cmds[2] != "ln -sf /usr/bin/python3 /usr/bin/python" {
				t.Errorf("third command = %q", cmds[2])
			}
			if cmds[3] != "python -m pip install --upgrade pip" {
				t.Errorf("fourth command = %q", cmds[3])
			}
		})
	}
}

func TestProviderHighlights(t *testing.T) {
	for _, p := range ListProviders() {
		if len(p.Highlights()) == 0 {
			t.Errorf("%s has no menu highlights", p.ID())
		}
	}
}

func TestCurrentArchIsSupported(t *testing.T) {
	arch := CurrentArch()
	for _, p := range ListProviders() {
		if !p.SupportsArch(arch) {
			t.Errorf("%s does not support current arch %s", p.ID(), arch)
		}
	}
}
