//go:build tinygo

// Package connect joins Wi-Fi as an import side effect.  Credentials
// are injected at flash time:
//
//	tinygo flash -ldflags "\
//	  -X 'github.com/merliot/pitchfork/tinynet/connect.ssid=MYAP' \
//	  -X 'github.com/merliot/pitchfork/tinynet/connect.pass=SECRET'" ...
package connect

import "github.com/merliot/pitchfork/tinynet"

var (
	ssid string
	pass string
)

func init() {
	if ssid != "" {
		tinynet.NetConnect(ssid, pass)
	}
}
