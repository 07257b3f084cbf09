package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/transitsigns/pid.go/pkg/pid"
	"github.com/transitsigns/pid.go/pkg/pid/serial"
)

const unconnectedPrompt = "[none] > "

var (
	device   string
	evalOnly bool
)

func init() {
	flag.StringVar(&device, "device", "", "Serial device to connect on startup.")
	flag.BoolVar(&evalOnly, "e", false, "Evaluation only, no interactive shell.")
}

type shell struct {
	sh   *ishell.Shell
	conn *pid.Conn
}

func newShell() *shell {
	s := &shell{sh: ishell.New()}
	s.sh.SetPrompt(unconnectedPrompt)
	s.sh.AddCmd(&ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "DEVICE",
		Func:    s.connect,
	})
	s.sh.AddCmd(&ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func:    s.disconnect,
	})
	s.sh.AddCmd(&ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "MESSAGE (e.g. V40^12:34 FUNKYTOWN~5_Limited Express)",
		Func:    s.mustBeConnected(s.send),
	})
	s.sh.AddCmd(&ishell.Cmd{
		Name:    "ping",
		Aliases: []string{"p"},
		Help:    "",
		Func:    s.mustBeConnected(s.ping),
	})
	s.sh.AddCmd(&ishell.Cmd{
		Name:    "inspect",
		Aliases: []string{"i"},
		Help:    "HEXBYTES (framed or bare)",
		Func:    s.inspect,
	})
	return s
}

func (s *shell) connect(c *ishell.Context) {
	if len(c.Args) < 1 {
		c.Err(fmt.Errorf("DEVICE required"))
		return
	}
	if err := s.open(c.Args[0]); err != nil {
		c.Err(err)
	}
}

func (s *shell) open(dev string) error {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
		s.sh.SetPrompt(unconnectedPrompt)
	}
	conn, err := serial.Open(serial.Config{Device: dev})
	if err != nil {
		return err
	}
	s.conn = conn
	s.sh.SetPrompt(dev + " > ")
	return nil
}

func (s *shell) disconnect(c *ishell.Context) {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
		s.sh.SetPrompt(unconnectedPrompt)
	}
}

func (s *shell) mustBeConnected(fn func(*ishell.Context)) func(*ishell.Context) {
	return func(c *ishell.Context) {
		if s.conn == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

func (s *shell) send(c *ishell.Context) {
	if len(c.Args) < 1 {
		c.Err(fmt.Errorf("MESSAGE required"))
		return
	}
	if err := s.conn.SendString(strings.Join(c.Args, " ")); err != nil {
		c.Err(err)
		return
	}
	c.Println("OK")
}

func (s *shell) ping(c *ishell.Context) {
	if err := s.conn.Ping(); err != nil {
		c.Err(err)
		return
	}
	c.Println("OK")
}

func (s *shell) inspect(c *ishell.Context) {
	if len(c.Args) < 1 {
		c.Err(fmt.Errorf("HEXBYTES required"))
		return
	}
	raw, err := hex.DecodeString(strings.Join(c.Args, ""))
	if err != nil {
		c.Err(err)
		return
	}
	msg, err := pid.Inspect(raw)
	if err != nil {
		c.Err(err)
		return
	}
	switch m := msg.(type) {
	case pid.DisplayMessage:
		c.Printf("DisplayMessage %q\n", m.String())
	case pid.PingMessage:
		c.Printf("PingMessage payload=%#02x\n", m.Payload)
	case pid.ResponseMessage:
		c.Printf("ResponseMessage payload=%#02x\n", m.Payload)
	}
}

func (s *shell) run(args ...string) {
	if device != "" {
		if err := s.open(device); err != nil {
			log.Fatalf("connect %q failed: %v", device, err)
		}
	}
	defer func() {
		if s.conn != nil {
			s.conn.Close()
		}
	}()
	if len(args) > 0 {
		if err := s.sh.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if evalOnly {
		log.Fatalln("command expected")
	}
	s.sh.Run()
}
