package schema

import (
	"fmt"
	"sort"

	"github.com/danmuck/stompframe/internal/protocol"
	"github.com/danmuck/stompframe/internal/protocol/frame"
	"github.com/rs/zerolog/log"
)

// Value patterns from the STOMP 1.2 grammar.
const (
	PatternAcceptVersion = `^1\.[0-2](,1\.[0-2])*$`
	PatternVersion       = `^1\.[0-2]$`
	PatternHeartBeat     = `^[0-9]+,[0-9]+$`
	PatternContentLength = `^[0-9]+$`
	PatternAck           = `^(` + protocol.AckAuto + `|` + protocol.AckClient + `|` + protocol.AckClientIndividual + `)$`
)

var standard = map[string]Shape{
	protocol.CmdConnect: NewShape(
		Matching(protocol.HdrAcceptVersion, true, PatternAcceptVersion),
		Required(protocol.HdrHost),
		Matching(protocol.HdrHeartBeat, false, PatternHeartBeat),
	),
	protocol.CmdStomp: NewShape(
		Matching(protocol.HdrAcceptVersion, true, PatternAcceptVersion),
		Required(protocol.HdrHost),
		Matching(protocol.HdrHeartBeat, false, PatternHeartBeat),
	),
	protocol.CmdConnected: NewShape(
		Matching(protocol.HdrVersion, true, PatternVersion),
		Matching(protocol.HdrHeartBeat, false, PatternHeartBeat),
	),
	protocol.CmdSend: NewShape(
		Required(protocol.HdrDestination),
		Matching(protocol.HdrContentLength, false, PatternContentLength),
	),
	protocol.CmdSubscribe: NewShape(
		Required(protocol.HdrDestination),
		Required(protocol.HdrId),
		Matching(protocol.HdrAck, false, PatternAck),
	),
	protocol.CmdUnsubscribe: NewShape(
		Required(protocol.HdrId),
	),
	protocol.CmdAck: NewShape(
		Required(protocol.HdrId),
	),
	protocol.CmdNack: NewShape(
		Required(protocol.HdrId),
	),
	protocol.CmdBegin: NewShape(
		Required(protocol.HdrTransaction),
	),
	protocol.CmdCommit: NewShape(
		Required(protocol.HdrTransaction),
	),
	protocol.CmdAbort: NewShape(
		Required(protocol.HdrTransaction),
	),
	protocol.CmdDisconnect: NewShape(),
	protocol.CmdMessage: NewShape(
		Required(protocol.HdrDestination),
		Required(protocol.HdrMessageId),
		Required(protocol.HdrSubscription),
		Matching(protocol.HdrContentLength, false, PatternContentLength),
	),
	protocol.CmdReceipt: NewShape(
		Required(protocol.HdrReceiptId),
	),
	protocol.CmdError: NewShape(
		Matching(protocol.HdrContentLength, false, PatternContentLength),
	),
}

// Standard returns the built-in STOMP 1.2 shape for command.
func Standard(command string) (Shape, bool) {
	shape, ok := standard[command]
	return shape, ok
}

// StandardCommands lists commands with a built-in shape, sorted.
func StandardCommands() []string {
	out := make([]string, 0, len(standard))
	for cmd := range standard {
		out = append(out, cmd)
	}
	sort.Strings(out)
	return out
}

// ValidateStandard validates fr against the built-in shape for its
// command. Unknown commands are reported as invalid.
func ValidateStandard(fr *frame.Frame) Result {
	shape, ok := Standard(fr.Command)
	if !ok || !protocol.IsCommand(fr.Command) {
		log.Error().Str("command", fr.Command).Msg("schema.ValidateStandard unknown command")
		return Result{
			Message: fmt.Sprintf("Command %q is unknown (Frame: %s)", fr.Command, fr),
			Violation: &ValidationError{
				Command: fr.Command,
				Reason:  protocol.ErrUnknownCommand.Error(),
			},
		}
	}
	return Validate(fr, shape)
}
