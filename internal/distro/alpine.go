package distro

import "fmt"

const (
	alpineBranch  = "3.19"
	alpineRelease = "3.19.0"
	alpineBaseURL = "https://dl-cdn.alpinelinux.org/alpine/v%s/releases/%s"
)

// AlpineProvider implements Provider for Alpine Linux.
type AlpineProvider struct {
	BaseProvider
}

// NewAlpineProvider creates a new Alpine Linux provider.
func NewAlpineProvider() *AlpineProvider {
	return &AlpineProvider{
		BaseProvider: BaseProvider{
			id:      Alpine,
			name:    "Alpine Linux",
			version: alpineRelease,
			archs:   []Arch{ArchAMD64, ArchARM64},
			highlights: []string{
				"Lightweight (~3MB)",
				"Fast startup",
				"Minimal resource usage",
			},
		},
	}
}

// Rootfs returns the minirootfs tarball for Alpine Linux.
func (p *AlpineProvider) Rootfs(arch Arch) (*Rootfs, error) {
	if !p.SupportsArch(arch) {
		return nil, &ErrUnsupportedArch{Distro: p.id, Arch: arch}
	}

	alpineArch := p.toAlpineArch(arch)
	filename := fmt.Sprintf("alpine-minirootfs-%s-%s.tar.gz", alpineRelease, alpineArch)

	return &Rootfs{
		URL:      fmt.Sprintf(alpineBaseURL, alpineBranch, alpineArch) + "/" + filename,
		Filename: filename,
		SizeMB:   3,
	}, nil
}

// Provisioning installs Python, pip and a build toolchain with apk.
func (p *AlpineProvider) Provisioning() []string {
	return []string{
		"apk update",
		"apk add python3 py3-pip gcc python3-dev musl-dev linux-headers",
		pythonSymlink,
		pipUpgrade,
	}
}

// toAlpineArch converts our arch to Alpine's arch naming.
func (p *AlpineProvider) toAlpineArch(arch Arch) string {
	switch arch {
	case ArchAMD64:
		return "x86_64"
	case ArchARM64:
		return "aarch64"
	default:
		return ""
	}
}

func init() {
	Register(NewAlpineProvider())
}
