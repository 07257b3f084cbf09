package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/transitsigns/pid.go/pkg/pid/serial"
)

var device = "/dev/ttyUSB0"

func init() {
	if val := os.Getenv("PID_DEVICE"); val != "" {
		device = val
	}
	flag.StringVar(&device, "device", device, "Serial device of the display.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	if flag.NArg() == 0 {
		log.Fatalln(`message expected, e.g. 'V40^12:34 FUNKYTOWN~5_Limited Express'`)
	}

	conn, err := serial.Open(serial.Config{Device: device})
	if err != nil {
		log.Fatalln(err)
	}
	defer conn.Close()

	if err := conn.SendString(strings.Join(flag.Args(), " ")); err != nil {
		log.Fatalln(err)
	}
}
