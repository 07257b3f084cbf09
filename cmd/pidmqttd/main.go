package main

import (
	"flag"
	"os"
	"sync"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	fx "github.com/transitsigns/pid.go/pkg/framework"
	"github.com/transitsigns/pid.go/pkg/mqtt"
	"github.com/transitsigns/pid.go/pkg/pid"
	"github.com/transitsigns/pid.go/pkg/pid/serial"
)

var (
	mqttURL      = "mqtt://localhost:1883/pid/"
	device       = "/dev/ttyUSB0"
	baud         = serial.DefaultBaud
	pingInterval = pid.DefaultPingInterval
)

func init() {
	if val := os.Getenv("PID_MQTT_URL"); val != "" {
		mqttURL = val
	}
	if val := os.Getenv("PID_DEVICE"); val != "" {
		device = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&device, "device", device, "Serial device of the display.")
	flag.IntVar(&baud, "baud", baud, "Serial baud rate.")
	flag.DurationVar(&pingInterval, "ping", pingInterval, "Keep-alive ping interval.")
}

func clientID() string {
	id, err := machineid.ProtectedID("pidmqttd")
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return "pidmqttd"
	}
	return "pidmqttd-" + id[:12]
}

func main() {
	flag.Parse()

	conn, err := serial.Open(serial.Config{Device: device, Baud: baud})
	if err != nil {
		glog.Exitf("open %s: %v", device, err)
	}
	defer conn.Close()

	queue, err := mqtt.NewQueueFromURL(mqttURL, clientID())
	if err != nil {
		glog.Exitf("bad MQTT URL %q: %v", mqttURL, err)
	}
	if err := queue.Connect(); err != nil {
		glog.Exitf("connect %s: %v", mqttURL, err)
	}
	defer queue.Close()

	// The subscriber and the pinger share the serial line; only one
	// exchange may be in flight per connection.
	var connMu sync.Mutex

	err = queue.Sub("message", func(topic string, payload []byte) {
		connMu.Lock()
		defer connMu.Unlock()
		if err := conn.SendString(string(payload)); err != nil {
			glog.Errorf("send %q: %v", payload, err)
			return
		}
		glog.Infof("displayed %q", payload)
	})
	if err != nil {
		glog.Exitf("subscribe: %v", err)
	}
	glog.Infof("bridging %s%s to %s, pinging every %v",
		queue.TopicPrefix, "message", device, pingInterval)

	runner := fx.NewRunner().HandleSignals()
	runner.Go(&pid.Pinger{Conn: conn, Interval: pingInterval, Lock: &connMu})
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
