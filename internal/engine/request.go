// Package engine describes the command-line contract of the external
// VideoVault engine: what a submission looks like (TaskRequest), how it maps
// to an argument vector (Builder), and how the engine's textual output is read
// back (ParseLine, ParseResult).
//
// Nothing in this package performs I/O.
package engine

// Mode selects the engine code path.
type Mode int

const (
	ModeEncode Mode = iota
	ModeDecode
	ModeAI
)

func (m Mode) String() string {
	switch m {
	case ModeEncode:
		return "encode"
	case ModeDecode:
		return "decode"
	case ModeAI:
		return "ai"
	default:
		return "unknown"
	}
}

// AITask selects the assistant request run with ModeAI.
type AITask int

const (
	TaskNone AITask = iota
	TaskSuggestPassword
	TaskPeek
)

func (t AITask) String() string {
	switch t {
	case TaskSuggestPassword:
		return "suggestPassword"
	case TaskPeek:
		return "peek"
	default:
		return "none"
	}
}

// Token is the value the engine's parser expects after --ai-task.
func (t AITask) Token() string {
	switch t {
	case TaskSuggestPassword:
		return "password"
	case TaskPeek:
		return "peek"
	default:
		return ""
	}
}

// Method is one embedding technique the engine supports.
type Method struct {
	Name       string `yaml:"name"`
	Carrier    bool   `yaml:"carrier"`     // needs a carrier video
	OutputName string `yaml:"output_name"` // default save-dialog file name
	OutputExt  string `yaml:"output_ext"`  // save-dialog filter extension, without dot
}

// Methods is an ordered method table.
type Methods []Method

// DefaultMethods matches the methods accepted by the engine's argument parser.
func DefaultMethods() Methods {
	return Methods{
		{Name: "steganography", Carrier: true, OutputName: "encoded_steg.avi", OutputExt: "avi"},
		{Name: "datareel", Carrier: false, OutputName: "encoded.mp4", OutputExt: "mp4"},
		{Name: "append", Carrier: true, OutputName: "encoded.mp4", OutputExt: "mp4"},
	}
}

// Lookup returns the method with the given name.
func (ms Methods) Lookup(name string) (Method, bool) {
	for _, m := range ms {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// RequiresCarrier reports whether encoding with the named method needs a
// carrier video. Unknown methods are assumed to need one.
func (ms Methods) RequiresCarrier(name string) bool {
	m, ok := ms.Lookup(name)
	if !ok {
		return true
	}
	return m.Carrier
}

// Names lists method names in table order.
func (ms Methods) Names() []string {
	names := make([]string, 0, len(ms))
	for _, m := range ms {
		names = append(names, m.Name)
	}
	return names
}

// TaskRequest is one validated-or-not submission. Treat it as a value:
// Build never modifies it.
type TaskRequest struct {
	Mode         Mode
	Method       string   // Encode/Decode only
	Password     string   // empty means no password
	CarrierPath  string   // Encode (carrier methods), Decode, Peek
	PayloadPaths []string // Encode only, in selection order
	OutputTarget string   // file for Encode, directory for Decode
	AITask       AITask   // ModeAI only
}

// EncodeRequest is a convenience constructor for an Encode submission.
func EncodeRequest(method, password, carrier string, payloads []string, output string) TaskRequest {
	return TaskRequest{
		Mode:         ModeEncode,
		Method:       method,
		Password:     password,
		CarrierPath:  carrier,
		PayloadPaths: append([]string(nil), payloads...),
		OutputTarget: output,
	}
}

// DecodeRequest is a convenience constructor for a Decode submission.
func DecodeRequest(method, password, carrier, outputDir string) TaskRequest {
	return TaskRequest{
		Mode:         ModeDecode,
		Method:       method,
		Password:     password,
		CarrierPath:  carrier,
		OutputTarget: outputDir,
	}
}

// AIRequest is a convenience constructor for an assistant request.
// carrier is only meaningful for TaskPeek.
func AIRequest(task AITask, carrier string) TaskRequest {
	return TaskRequest{Mode: ModeAI, AITask: task, CarrierPath: carrier}
}
