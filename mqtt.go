//go:build !tinygo

package pitchfork

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// mqttSocket bridges a server bus to an MQTT broker.  State updates
// broadcast on the bus publish to {model}/{id}/state; messages arriving
// on {model}/{id}/cmd go onto the bus like from any other socket.
type mqttSocket struct {
	socket
	client     mqtt.Client
	stateTopic string
}

// BridgeMQTT bridges the server's thing to an MQTT broker.  The broker
// is advisory: state flows out, commands flow in, but presence on the
// broker is not required for the thing to run.
func (s *Server) BridgeMQTT(broker string) error {
	thinger := s.thinger

	b := &mqttSocket{
		socket:     socket{"mqtt:" + broker, "", 0, s.bus},
		stateTopic: thinger.Model() + "/" + thinger.Id() + "/state",
	}
	b.SetFlag(SocketFlagBcast)

	cmdTopic := thinger.Model() + "/" + thinger.Id() + "/cmd"

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(thinger.Model() + "-" + thinger.Id())
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		// (Re)subscribe on every connect; subscriptions don't
		// survive a reconnect
		token := client.Subscribe(cmdTopic, 0, b.recv)
		if token.Wait() && token.Error() != nil {
			fmt.Printf("Subscribe error %s: %s\r\n",
				cmdTopic, token.Error())
		}
	})

	b.client = mqtt.NewClient(opts)
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connecting to broker %s: %w",
			broker, token.Error())
	}

	s.bus.plugin(b)
	return nil
}

func (b *mqttSocket) Close() {
	b.client.Disconnect(250)
}

func (b *mqttSocket) Send(msg *Msg) error {
	b.client.Publish(b.stateTopic, 0, false, msg.Bytes())
	return nil
}

func (b *mqttSocket) recv(_ mqtt.Client, m mqtt.Message) {
	msg := &Msg{bus: b.bus, src: b, payload: m.Payload()}
	fmt.Printf("Recv mqtt: %.80s\r\n", msg.String())
	b.bus.receive(msg)
}
