package distro

import "fmt"

const (
	ubuntuVersion  = "22.04"
	ubuntuCodename = "jammy"
	ubuntuBaseURL  = "https://cloud-images.ubuntu.com/minimal/releases"
)

// UbuntuProvider implements Provider for Ubuntu.
type UbuntuProvider struct {
	BaseProvider
}

// NewUbuntuProvider creates a new Ubuntu provider.
func NewUbuntuProvider() *UbuntuProvider {
	return &UbuntuProvider{
		BaseProvider: BaseProvider{
			id:      Ubuntu,
			name:    "Ubuntu",
			version: ubuntuVersion,
			archs:   []Arch{ArchAMD64, ArchARM64},
			highlights: []string{
				"Full-featured (~50MB)",
				"More packages available",
				"Familiar environment",
			},
		},
	}
}

// Rootfs returns the minimal cloud image root tarball for Ubuntu.
func (p *UbuntuProvider) Rootfs(arch Arch) (*Rootfs, error) {
	if !p.SupportsArch(arch) {
		return nil, &ErrUnsupportedArch{Distro: p.id, Arch: arch}
	}

	filename := fmt.Sprintf("ubuntu-%s-minimal-cloudimg-%s-root.tar.xz", ubuntuVersion, p.toUbuntuArch(arch))

	return &Rootfs{
		URL:      fmt.Sprintf("%s/%s/release/%s", ubuntuBaseURL, ubuntuCodename, filename),
		Filename: filename,
		SizeMB:   50,
	}, nil
}

// Provisioning installs Python, pip and build-essential with apt-get.
func (p *UbuntuProvider) Provisioning() []string {
	return []string{
		"apt-get update",
		"apt-get install -y python3 python3-pip python3-dev build-essential",
		pythonSymlink,
		pipUpgrade,
	}
}

// toUbuntuArch converts our arch to Ubuntu's arch naming.
func (p *UbuntuProvider) toUbuntuArch(arch Arch) string {
	switch arch {
	case ArchAMD64:
		return "amd64"
	case ArchARM64:
		return "arm64"
	default:
		return ""
	}
}

func init() {
	Register(NewUbuntuProvider())
}
