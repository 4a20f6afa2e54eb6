// The client command logs an account into a server cluster, enters the
// world with one of its characters, and keeps the session alive while
// reporting everything the servers send.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ragnet/ragnet/internal/core"
	"github.com/ragnet/ragnet/internal/packets"
	"github.com/ragnet/ragnet/internal/session"
	"github.com/ragnet/ragnet/internal/settings"
)

var (
	configFlag   = flag.String("config", "./", "Path to the directory containing the client config file")
	usernameFlag = flag.String("username", "", "Account username (defaults to the most recent saved profile)")
	passwordFlag = flag.String("password", "", "Account password")
	serverFlag   = flag.String("server", "", "Character server name (defaults to the first in the list)")
	slotFlag     = flag.Int("slot", -1, "Character slot to enter the world with (defaults to the saved slot)")
	rememberFlag = flag.Bool("remember", false, "Save the password for the next run")
)

func main() {
	flag.Parse()

	config := core.LoadConfig(*configFlag)
	fmt.Println("using configuration file:", *configFlag)

	logger, err := core.NewLogger(config)
	if err != nil {
		fmt.Println("error initializing logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := settings.Initialize(config.Settings.Filename); err != nil {
		logger.Fatalf("error opening settings database: %v", err)
	}
	defer settings.Shutdown()

	if err := run(config, logger); err != nil {
		logger.Fatal(err)
	}
	fmt.Println("disconnected")
}

func run(config *core.Config, logger *zap.SugaredLogger) error {
	profile, err := resolveProfile()
	if err != nil {
		return err
	}

	s := session.New(config, logger)
	defer s.Close()

	servers, err := s.LogIn(profile.Username, profile.Password)
	if err != nil {
		return err
	}
	server, err := pickServer(servers, profile.LastServer)
	if err != nil {
		return err
	}

	roster, err := s.ConnectToCharacterServer(server)
	if err != nil {
		return err
	}
	slot, err := pickSlot(roster, profile.LastSlot)
	if err != nil {
		return err
	}
	if err := s.SelectCharacter(slot); err != nil {
		return err
	}

	profile.LastServer = server.Name
	profile.LastSlot = slot
	if err := settings.SaveProfile(profile); err != nil {
		logger.Warnf("error saving profile: %v", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-interrupt:
			fmt.Println("\nshutting down...")
			return nil
		default:
		}

		events, err := s.Poll()
		report(logger, events)
		if err != nil {
			var unknown *session.UnknownHeaderError
			if errors.As(err, &unknown) && config.Debugging.PacketLoggingEnabled {
				s.History().Dump(os.Stderr)
			}
			return err
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// resolveProfile combines the command line flags with the saved profile
// for the account.
func resolveProfile() (*settings.Profile, error) {
	var profile *settings.Profile
	var err error
	if *usernameFlag != "" {
		profile, err = settings.FindProfile(*usernameFlag)
	} else {
		profile, err = settings.RecentProfile()
	}
	if err != nil {
		return nil, err
	}
	if profile == nil {
		if *usernameFlag == "" {
			return nil, errors.New("no saved profile; provide -username and -password")
		}
		profile = &settings.Profile{Username: *usernameFlag}
	}

	if *passwordFlag != "" {
		profile.Password = *passwordFlag
	}
	if profile.Password == "" {
		return nil, errors.New("no password; provide -password or save one with -remember")
	}
	if *rememberFlag {
		profile.RememberPassword = true
	}
	return profile, nil
}

func pickServer(servers []packets.CharacterServerInformation, saved string) (packets.CharacterServerInformation, error) {
	name := *serverFlag
	if name == "" {
		name = saved
	}
	if name == "" {
		if len(servers) == 0 {
			return packets.CharacterServerInformation{}, errors.New("the login server returned no character servers")
		}
		return servers[0], nil
	}
	for _, server := range servers {
		if server.Name == name {
			return server, nil
		}
	}
	return packets.CharacterServerInformation{}, fmt.Errorf("no character server named %q", name)
}

func pickSlot(roster []packets.CharacterInformation, saved uint8) (uint8, error) {
	if *slotFlag >= 0 {
		return uint8(*slotFlag), nil
	}
	if len(roster) == 0 {
		return 0, errors.New("the account has no characters; create one first")
	}
	for _, ch := range roster {
		if ch.CharacterNumber == saved {
			return saved, nil
		}
	}
	return roster[0].CharacterNumber, nil
}

func report(logger *zap.SugaredLogger, events []session.Event) {
	for _, event := range events {
		switch e := event.(type) {
		case session.ChatMessage:
			if e.Sender != "" {
				fmt.Printf("%s: %s\n", e.Sender, e.Text)
			} else {
				fmt.Println(e.Text)
			}
		case session.MapChanged:
			logger.Infow("map changed", "map", e.MapName, "position", e.Position)
		case session.Disconnected:
			logger.Infow("server released the session", "wait", e.Wait10Seconds)
		default:
			logger.Debugf("%T%+v", event, event)
		}
	}
}
