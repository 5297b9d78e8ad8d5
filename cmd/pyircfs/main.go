// Command pyircfs mounts a live IRC session as a FUSE filesystem: reading a
// conversation file retrieves its history, writing one sends a message or
// command, mkdir under /names joins a channel.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse/nodefs"
	"github.com/hanwen/go-fuse/v2/fuse/pathfs"
	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/pyircfs/pyircfs/config"
	"github.com/pyircfs/pyircfs/fs"
	"github.com/pyircfs/pyircfs/handler"
)

// unmountPoll is how often the bounded wait for session status 100 is
// checked during the unmount handshake.
const unmountPoll = 100 * time.Millisecond

// unmountTimeout bounds how long the unmount handshake waits for the QUIT
// to be acknowledged by the Connection closing.
const unmountTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	var (
		serverAddr  = flag.String("server", "", "IRC server, host[:port] (required)")
		nickname    = flag.String("nickname", "", "primary nickname (default: local user name)")
		altnick     = flag.String("altnick", "", "alternate nickname, tried if nickname is in use")
		username    = flag.String("username", "", "IRC username (default: same as nickname)")
		realname    = flag.String("realname", "", "IRC realname (default: pyircfs)")
		password    = flag.String("password", "", "server password")
		configPath  = flag.String("config", "", "TOML file of named mount profiles")
		profileName = flag.String("profile", "", "profile name to load from -config")
	)
	flag.Parse()

	log := log15.New()
	log.SetHandler(log15.LvlFilterHandler(log15.LvlInfo, log15.StderrHandler))

	mountpoint := flag.Arg(0)
	if len(mountpoint) == 0 {
		fmt.Fprintln(os.Stderr, "usage: pyircfs [flags] <mountpoint>")
		return 1
	}

	profile := config.Profile{
		Server:   *serverAddr,
		Nickname: *nickname,
		AltNick:  *altnick,
		Username: *username,
		Realname: *realname,
		Password: *password,
	}

	if len(*configPath) > 0 {
		file, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			return 1
		}
		if len(*profileName) > 0 {
			base, ok := file.Profile(*profileName)
			if !ok {
				log.Error("no such profile", "profile", *profileName)
				return 1
			}
			profile = config.Merge(base, profile)
		}
	}

	if len(profile.Nickname) == 0 {
		if u, err := user.Current(); err == nil {
			profile.Nickname = u.Username
		}
	}
	if len(profile.Username) == 0 {
		profile.Username = profile.Nickname
	}
	if len(profile.Realname) == 0 {
		profile.Realname = "pyircfs"
	}
	if len(profile.Server) == 0 {
		fmt.Fprintln(os.Stderr, "pyircfs: -server is required")
		return 1
	}

	h := handler.New(log)
	identity := handler.Identity{
		Server:    profile.Server,
		Nicknames: profile.Nicknames(),
		Username:  profile.Username,
		Realname:  profile.Realname,
		Password:  profile.Password,
	}
	if err := h.Connect(identity); err != nil {
		log.Error("connect failed", "error", err)
		return 1
	}
	if !h.WaitConnected(30 * time.Second) {
		log.Error("registration did not complete", "status", h.Status().String())
		h.Close("registration timed out")
		return 1
	}

	projection := fs.New(h, log)
	nfs := pathfs.NewPathNodeFs(projection, nil)
	fuseServer, _, err := nodefs.MountRoot(mountpoint, nfs.Root(), nil)
	if err != nil {
		log.Error("mount failed", "error", err)
		h.Close("mount failed")
		return 1
	}

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("unmount requested")
		fuseServer.Unmount()
	}()

	log.Info("mounted", "mountpoint", mountpoint, "server", profile.Server)
	fuseServer.Serve()

	h.Close("pyircfs unmounted")
	waitUnmounted(h, unmountTimeout)
	return 0
}

// waitUnmounted polls the session status for a terminal (>=100) code,
// bounded by timeout, per the unmount handshake.
func waitUnmounted(h *handler.Handler, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if h.Status().Code >= 100 {
			return
		}
		time.Sleep(unmountPoll)
	}
}
