// Command langlights shows live per-language user counts on an LED strip
// and a small status screen.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/sweeney/langlights/internal/config"
	"github.com/sweeney/langlights/internal/conn"
	"github.com/sweeney/langlights/internal/display"
	"github.com/sweeney/langlights/internal/engine"
	"github.com/sweeney/langlights/internal/gpio"
	"github.com/sweeney/langlights/internal/led"
	"github.com/sweeney/langlights/internal/mqtt"
	"github.com/sweeney/langlights/internal/status"
	"github.com/sweeney/langlights/internal/transport"
	"github.com/sweeney/langlights/internal/web"
)

func main() {
	cfg, printConfig, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			log.Fatalf("fatal: %v", err)
		}
		os.Stdout.Write(data)
		return
	}
	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// parseFlags loads the config file, if any, and applies flags that were set
// explicitly on top of it.
func parseFlags(fs *flag.FlagSet, args []string) (*config.Config, bool, error) {
	path := fs.String("config", "", "YAML config file (empty uses built-in defaults)")
	server := fs.String("server", "", "Statistics server host")
	key := fs.String("key", "", "Access key sent with the subscription")
	httpAddr := fs.String("http", "", `HTTP status address ("off" disables)`)
	broker := fs.String("broker", "", `MQTT broker address ("off" disables)`)
	pinButton := fs.Int("pin-button", gpio.DefaultPinButton, "BCM pin number for the brightness button (-1 disables)")
	printConfig := fs.Bool("print-config", false, "Print the effective config and exit")

	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	var cfg *config.Config
	if *path != "" {
		loaded, err := config.Load(*path)
		if err != nil {
			return nil, false, err
		}
		cfg = loaded
	} else {
		def := config.Default()
		cfg = &def
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "server":
			cfg.Server = *server
		case "key":
			cfg.AccessKey = *key
		case "http":
			cfg.HTTP = offToEmpty(*httpAddr)
		case "broker":
			cfg.MQTT.Broker = offToEmpty(*broker)
		case "pin-button":
			cfg.ButtonPin = *pinButton
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, *printConfig, nil
}

func offToEmpty(s string) string {
	if s == "off" {
		return ""
	}
	return s
}

func run(cfg *config.Config) error {
	session := uuid.NewString()

	// Initialize GPIO
	var button gpio.Button = gpio.NoButton{}
	if cfg.ButtonPin >= 0 {
		b, err := gpio.NewRealButton(cfg.GPIOChip, cfg.ButtonPin)
		if err != nil {
			return fmt.Errorf("init gpio: %w", err)
		}
		button = b
	}
	defer button.Close()

	wsURL, err := transport.URL(cfg.Server, cfg.Port, cfg.TLS, cfg.Path)
	if err != nil {
		return fmt.Errorf("feed url: %w", err)
	}

	// Initialize MQTT
	var publisher mqtt.Publisher = mqtt.NopPublisher{}
	if cfg.MQTT.Broker != "" {
		clientID := cfg.MQTT.ClientID
		if clientID == "" {
			clientID = "langlights-" + session[:8]
		}
		p, err := mqtt.NewRealPublisher(mqtt.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: clientID,
			Topics:   mqtt.TopicsFor(cfg.MQTT.TopicPrefix),
			Session:  session,
		})
		if err != nil {
			log.Printf("mqtt disabled: %v", err)
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	tracker := status.NewTracker(time.Now(), session, status.Config{
		Server:              cfg.Server,
		Port:                cfg.Port,
		Capacity:            cfg.Capacity,
		HeartbeatMs:         cfg.Heartbeat.Milliseconds(),
		DisconnectThreshold: cfg.DisconnectThreshold,
		SleepMs:             cfg.Sleep.Milliseconds(),
		Broker:              cfg.MQTT.Broker,
		HTTPAddr:            cfg.HTTP,
	})

	// Start HTTP status server
	if cfg.HTTP != "" {
		srv := web.New(cfg.HTTP, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP)
	}

	var out io.Writer = io.Discard
	if cfg.Terminal {
		out = os.Stdout
	}

	eng := engine.New(engine.Config{
		Server:        cfg.Server,
		Port:          cfg.Port,
		Capacity:      cfg.Capacity,
		MaxBrightness: uint8(cfg.MaxBrightness),
		Hues:          cfg.HueTable(),
		Session:       session,
	}, engine.Deps{
		Machine:   conn.NewMachine(cfg.Machine()),
		Transport: transport.NewRealTransport(wsURL),
		Button:    button,
		Strip:     led.NewTermStrip(out, cfg.Capacity),
		Log:       display.NewLog(display.DefaultLines, display.NewTermScreen(out, display.DefaultLines, display.DefaultWidth)),
		Publisher: publisher,
		Tracker:   tracker,
	})

	log.Printf("started: feed=%s capacity=%d heartbeat=%v poll=%v session=%s",
		wsURL, cfg.Capacity, cfg.Heartbeat, cfg.Poll, session)

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng.Start(ctx, time.Now())
	return supervise(ctx, eng, cfg.Sleep, time.Now, ticker.C, sigCh, time.After)
}

// supervise runs the loop, sleeping and waking the engine each time it
// gives up reconnecting. A zero sleep exits instead.
func supervise(ctx context.Context, eng *engine.Engine, sleep time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal, after func(time.Duration) <-chan time.Time) error {
	for {
		err := runLoop(ctx, eng, now, tick, sig)
		if !errors.Is(err, engine.ErrSleep) {
			return err
		}
		if sleep <= 0 {
			log.Printf("sleep disabled, exiting")
			return nil
		}

		log.Printf("sleeping for %v", sleep)
		select {
		case s := <-sig:
			log.Printf("received %v while sleeping, shutting down", s)
			eng.Shutdown(now(), signalName(s))
			return nil
		case <-after(sleep):
		}
		log.Printf("waking up")
		eng.Wake(now())
	}
}

func runLoop(ctx context.Context, eng *engine.Engine, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			eng.Shutdown(now(), signalName(s))
			return nil

		case <-tick:
			if err := eng.Step(ctx, now()); err != nil {
				return err
			}
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
