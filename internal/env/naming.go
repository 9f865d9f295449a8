package env

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// instancePrefix starts every instance name so lenv instances are easy to
// spot in wsl --list.
const instancePrefix = "lenv-"

// InstanceName derives the instance name for a project from its absolute path:
// lenv-<dirname>-<first 8 hex chars of md5(path)>. Projects that share a
// directory name at different paths get different names.
func InstanceName(absPath string) string {
	sum := md5.Sum([]byte(absPath))
	hash := hex.EncodeToString(sum[:])[:8]
	return instancePrefix + sanitizeName(ProjectName(absPath)) + "-" + hash
}

// ProjectName returns the last element of a project path. Both / and \ are
// separators on every host.
func ProjectName(projectPath string) string {
	p := strings.TrimRight(projectPath, `/\`)
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		p = p[i+1:]
	}
	if p == "" {
		return "."
	}
	return p
}

// sanitizeName replaces characters wsl rejects in distribution names.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, name)
}

// GuestPath translates a host path to the path the guest sees it at.
// Windows drive paths map onto the automount root: C:\Users\me\proj becomes
// /mnt/c/Users/me/proj. Paths without a drive letter only have their
// separators normalized.
func GuestPath(hostPath string) string {
	p := strings.ReplaceAll(hostPath, `\`, "/")
	if hasDriveLetter(p) {
		return "/mnt/" + strings.ToLower(p[:1]) + p[2:]
	}
	return p
}

func hasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
