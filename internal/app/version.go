package app

import "runtime/debug"

// Name is the program name used in output and the User-Agent header.
const Name = "leanpub-multi-action"

// Version returns the module version, or the VCS revision for development
// builds.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			rev := setting.Value
			if len(rev) > 12 {
				rev = rev[:12]
			}
			return rev
		}
	}
	return "dev"
}

// UserAgent identifies this program to Leanpub.
func UserAgent() string {
	return Name + "/" + Version()
}
