// +build !windows

package provision

// No other loaders to conflict with outside Windows.
var knownLoaderFingerprints []loaderFingerprint

var genericLoaderFiles []string
