//go:build tinygo

// Package tinynet joins a tinygo device to Wi-Fi using the board's
// probed network driver.  Mains don't call in here directly; they
// import the connect package, which carries the flash-time
// credentials.
package tinynet

import (
	"log"
	"net"
	"time"

	"tinygo.org/x/drivers/netdev"
	"tinygo.org/x/drivers/netlink"
	"tinygo.org/x/drivers/netlink/probe"
)

var link netlink.Netlinker
var dev netdev.Netdever

// NetConnect probes the board's network device and joins the AP,
// blocking until associated.  Failure is fatal; on these boards
// there's no recovering a dead radio from software.
func NetConnect(ssid, pass string) {
	// wait a bit for serial
	time.Sleep(2 * time.Second)

	link, dev = probe.Probe()

	err := link.NetConnect(&netlink.ConnectParams{
		Ssid:       ssid,
		Passphrase: pass,
	})
	if err != nil {
		log.Fatal(err)
	}

	if ip, err := GetIPAddr(); err == nil {
		println("connected to", ssid, "as", ip.String())
	}
}

func GetHardwareAddr() (net.HardwareAddr, error) {
	return link.GetHardwareAddr()
}

func GetIPAddr() (net.IP, error) {
	addr, err := dev.Addr()
	if err != nil {
		return nil, err
	}
	return net.IP(addr.AsSlice()), nil
}
