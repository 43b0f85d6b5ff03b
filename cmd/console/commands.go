package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/itemshuffle/internal/handlers"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/xflags"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type commandKind int

const (
	cmdCollect commandKind = iota
	cmdDelayed
	cmdFrames
	cmdLook
	cmdSave
	cmdSync
	cmdStatus
	cmdHelp
	cmdCopy
)

// command is one parsed line of console input.
type command struct {
	kind    commandKind
	collect handlers.CollectRequest
	chest   handlers.ChestRequest
	delayed uint32
	frames  int
	// scene is the scene the command happens in. hasScene is false when
	// frames should reuse the last scene.
	scene    uint8
	hasScene bool
}

const helpText = `
Locations:
• chest <scene> <flag>            - Open a chest
• skull <scene> <flag>            - Pick up a skulltula token
• actor <id> <scene> <params> <item> - Collect any other actor
• flag <scene> <room> <actor>     - Collect a flag-tracked location
• delayed <flag>                  - Queue a delayed item
• look <scene> <flag> [chest]     - Show how a chest appears

Session:
• frames [n] [scene]              - Advance n idle frames (default 10)
• save                            - Save the game
• sync                            - Relay multiworld items now
• status                          - Refresh the session
• /copy                           - Copy the session ID
• /help                           - Show this help
• Ctrl+C                          - Quit

Numbers accept 0x prefixes.
`

// defaultFrames covers the delivery gate's ready window with room to spare.
const defaultFrames = 10

var titleCaser = cases.Title(language.English)

// displayName turns an identifier like "already_collected" into "Already Collected".
func displayName(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

func parseNumber[T uint8 | uint16 | uint32](field, s string) (T, error) {
	var zero T
	bits := 8
	switch any(zero).(type) {
	case uint16:
		bits = 16
	case uint32:
		bits = 32
	}
	n, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return zero, fmt.Errorf("invalid %s %q", field, s)
	}
	return T(n), nil
}

func expectArgs(name string, args []string, lo, hi int, usage string) error {
	if len(args) < lo || len(args) > hi {
		return fmt.Errorf("usage: %s %s", name, usage)
	}
	return nil
}

// parseCommand parses one line of input. Slash prefixes are optional.
func parseCommand(input string) (command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return command{}, fmt.Errorf("empty command")
	}
	name, args := strings.TrimPrefix(fields[0], "/"), fields[1:]

	switch name {
	case "chest":
		if err := expectArgs(name, args, 2, 2, "<scene> <flag>"); err != nil {
			return command{}, err
		}
		scene, err := parseNumber[uint8]("scene", args[0])
		if err != nil {
			return command{}, err
		}
		flag, err := parseNumber[uint8]("flag", args[1])
		if err != nil {
			return command{}, err
		}
		t := override.Trigger{Actor: override.ActorChest, Scene: scene, Params: uint16(flag & 0x1F)}
		return command{kind: cmdCollect, collect: handlers.CollectRequest{Trigger: &t}, scene: scene, hasScene: true}, nil

	case "skull":
		if err := expectArgs(name, args, 2, 2, "<scene> <flag>"); err != nil {
			return command{}, err
		}
		scene, err := parseNumber[uint8]("scene", args[0])
		if err != nil {
			return command{}, err
		}
		flag, err := parseNumber[uint8]("flag", args[1])
		if err != nil {
			return command{}, err
		}
		t := override.Trigger{Actor: override.ActorSkullToken, Scene: scene, Params: uint16(scene&0x1F)<<8 | uint16(flag)}
		return command{kind: cmdCollect, collect: handlers.CollectRequest{Trigger: &t}, scene: scene, hasScene: true}, nil

	case "actor":
		if err := expectArgs(name, args, 4, 4, "<id> <scene> <params> <item>"); err != nil {
			return command{}, err
		}
		actor, err := parseNumber[uint16]("actor", args[0])
		if err != nil {
			return command{}, err
		}
		scene, err := parseNumber[uint8]("scene", args[1])
		if err != nil {
			return command{}, err
		}
		params, err := parseNumber[uint16]("params", args[2])
		if err != nil {
			return command{}, err
		}
		item, err := parseNumber[uint16]("item", args[3])
		if err != nil {
			return command{}, err
		}
		t := override.Trigger{Actor: override.ActorID(actor), Scene: scene, Params: params, ItemID: item}
		return command{kind: cmdCollect, collect: handlers.CollectRequest{Trigger: &t}, scene: scene, hasScene: true}, nil

	case "flag":
		if err := expectArgs(name, args, 3, 3, "<scene> <room> <actor>"); err != nil {
			return command{}, err
		}
		var f xflags.Flag
		var err error
		if f.Scene, err = parseNumber[uint8]("scene", args[0]); err != nil {
			return command{}, err
		}
		if f.Room, err = parseNumber[uint8]("room", args[1]); err != nil {
			return command{}, err
		}
		if f.Actor, err = parseNumber[uint8]("actor", args[2]); err != nil {
			return command{}, err
		}
		return command{kind: cmdCollect, collect: handlers.CollectRequest{Flag: &f}, scene: f.Scene, hasScene: true}, nil

	case "delayed":
		if err := expectArgs(name, args, 1, 1, "<flag>"); err != nil {
			return command{}, err
		}
		flag, err := parseNumber[uint32]("flag", args[0])
		if err != nil {
			return command{}, err
		}
		return command{kind: cmdDelayed, delayed: flag}, nil

	case "look":
		if err := expectArgs(name, args, 2, 3, "<scene> <flag> [chest]"); err != nil {
			return command{}, err
		}
		scene, err := parseNumber[uint8]("scene", args[0])
		if err != nil {
			return command{}, err
		}
		flag, err := parseNumber[uint8]("flag", args[1])
		if err != nil {
			return command{}, err
		}
		req := handlers.ChestRequest{
			Trigger: override.Trigger{Actor: override.ActorChest, Scene: scene, Params: uint16(flag & 0x1F)},
			Vanilla: items.ChestBrown,
		}
		if len(args) == 3 {
			if err := req.Vanilla.UnmarshalText([]byte(args[2])); err != nil {
				return command{}, err
			}
		}
		return command{kind: cmdLook, chest: req, scene: scene, hasScene: true}, nil

	case "frames":
		if err := expectArgs(name, args, 0, 2, "[n] [scene]"); err != nil {
			return command{}, err
		}
		c := command{kind: cmdFrames, frames: defaultFrames}
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 || n > handlers.MaxFramesPerRequest {
				return command{}, fmt.Errorf("frames must be between 1 and %d", handlers.MaxFramesPerRequest)
			}
			c.frames = n
		}
		if len(args) > 1 {
			scene, err := parseNumber[uint8]("scene", args[1])
			if err != nil {
				return command{}, err
			}
			c.scene, c.hasScene = scene, true
		}
		return c, nil

	case "save":
		return command{kind: cmdSave}, nil
	case "sync":
		return command{kind: cmdSync}, nil
	case "status":
		return command{kind: cmdStatus}, nil
	case "help":
		return command{kind: cmdHelp}, nil
	case "copy":
		return command{kind: cmdCopy}, nil
	}
	return command{}, fmt.Errorf("unknown command %q, try /help", fields[0])
}
