// +build windows

package provision

var knownLoaderFingerprints = []loaderFingerprint{
	{"absoluteldr.dll", ConflictMHv6},
	{"hackproldr.dll", ConflictMHv7},
	{"ToastedMarshmellow.dll", ConflictGDHM},
}

var genericLoaderFiles = []string{
	"Geode.dll",
	"quickldr.dll",
	"GDDLLLoader.dll",
	"ModLdr.dll",
	"minhook.dll",
	"XInput9_1_0.dll",
}
