//go:build tinygo

package pitchfork

// No file system on the metal; configuration that must survive a power
// cycle goes through the device's settings gateway instead.

func ThingStore(t Thinger)   {}
func ThingRestore(t Thinger) {}
