package protocol

// Commands defined by STOMP 1.2.
const (
	CmdAbort       = "ABORT"
	CmdAck         = "ACK"
	CmdBegin       = "BEGIN"
	CmdCommit      = "COMMIT"
	CmdConnect     = "CONNECT"
	CmdConnected   = "CONNECTED"
	CmdDisconnect  = "DISCONNECT"
	CmdError       = "ERROR"
	CmdMessage     = "MESSAGE"
	CmdNack        = "NACK"
	CmdReceipt     = "RECEIPT"
	CmdSend        = "SEND"
	CmdStomp       = "STOMP"
	CmdSubscribe   = "SUBSCRIBE"
	CmdUnsubscribe = "UNSUBSCRIBE"
)

// Header names defined by STOMP 1.2.
const (
	HdrAcceptVersion = "accept-version"
	HdrAck           = "ack" // SUBSCRIBE, MESSAGE
	HdrContentLength = "content-length"
	HdrContentType   = "content-type"
	HdrDestination   = "destination" // SEND, SUBSCRIBE, MESSAGE
	HdrHeartBeat     = "heart-beat"
	HdrHost          = "host"
	HdrId            = "id" // SUBSCRIBE, UNSUBSCRIBE, ACK, NACK
	HdrLogin         = "login"
	HdrMessage       = "message"
	HdrMessageId     = "message-id" // MESSAGE
	HdrPasscode      = "passcode"
	HdrReceipt       = "receipt"
	HdrReceiptId     = "receipt-id"
	HdrServer        = "server"
	HdrSession       = "session"
	HdrSubscription  = "subscription" // MESSAGE
	HdrTransaction   = "transaction"
	HdrVersion       = "version"
)

// Ack modes accepted by SUBSCRIBE.
const (
	AckAuto             = "auto"
	AckClient           = "client"
	AckClientIndividual = "client-individual"
)

var commands = map[string]struct{}{
	CmdAbort: {}, CmdAck: {}, CmdBegin: {}, CmdCommit: {}, CmdConnect: {},
	CmdConnected: {}, CmdDisconnect: {}, CmdError: {}, CmdMessage: {}, CmdNack: {},
	CmdReceipt: {}, CmdSend: {}, CmdStomp: {}, CmdSubscribe: {}, CmdUnsubscribe: {},
}

// IsCommand reports whether cmd is one of the STOMP 1.2 commands.
func IsCommand(cmd string) bool {
	_, ok := commands[cmd]
	return ok
}
