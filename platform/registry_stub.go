// +build !windows

package platform

// CurrentRegistry returns nil: there's no registry to keep consistent
// on this platform.
func CurrentRegistry() Registry {
	return nil
}
