package rdapi

import (
	"fmt"
	"time"
)

// Version selects which in-application API struct RENDERDOC_GetAPI
// returns. Values match the RENDERDOC_Version enum: major*10000 +
// minor*100 + patch.
type Version uint32

const (
	Version100 Version = 10000
	Version101 Version = 10001
	Version102 Version = 10002
	Version110 Version = 10100
	Version111 Version = 10101
	Version112 Version = 10102
	Version120 Version = 10200
	Version130 Version = 10300
	Version140 Version = 10400
	Version141 Version = 10401
	Version142 Version = 10402
	Version150 Version = 10500
	Version160 Version = 10600
)

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", uint32(v)/10000, uint32(v)%10000/100, uint32(v)%100)
}

// CaptureOption tunes the tool's capture behavior. Values match the
// RENDERDOC_CaptureOption enum.
type CaptureOption int32

const (
	OptAllowVSync                       CaptureOption = 0
	OptAllowFullscreen                  CaptureOption = 1
	OptAPIValidation                    CaptureOption = 2
	OptCaptureCallstacks                CaptureOption = 3
	OptCaptureCallstacksOnlyDraws       CaptureOption = 4
	OptDelayForDebugger                 CaptureOption = 5
	OptVerifyBufferAccess               CaptureOption = 6
	OptHookIntoChildren                 CaptureOption = 7
	OptRefAllResources                  CaptureOption = 8
	OptSaveAllInitials                  CaptureOption = 9
	OptCaptureAllCmdLists               CaptureOption = 10
	OptDebugOutputMute                  CaptureOption = 11
	OptAllowUnsupportedVendorExtensions CaptureOption = 12
	OptSoftMemoryLimit                  CaptureOption = 13
)

// OverlayBits control the in-application overlay the tool draws on top
// of the running program. Values match the RENDERDOC_OverlayBits enum.
type OverlayBits uint32

const (
	OverlayEnabled     OverlayBits = 0x1
	OverlayFrameRate   OverlayBits = 0x2
	OverlayFrameNumber OverlayBits = 0x4
	OverlayCaptureList OverlayBits = 0x8

	OverlayDefault = OverlayEnabled | OverlayFrameRate | OverlayFrameNumber | OverlayCaptureList
	OverlayAll     = ^OverlayBits(0)
	OverlayNone    = OverlayBits(0)
)

// InputButton identifies keys for the tool's own in-process key hooks.
// Values match the RENDERDOC_InputButton enum: printable keys use their
// uppercase ASCII value, everything else sits above 0x100.
type InputButton int32

const (
	Key0 InputButton = 0x30 + iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

const (
	KeyA InputButton = 0x41 + iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

const (
	KeyNonPrintable InputButton = 0x100 + iota
	KeyDivide
	KeyMultiply
	KeySubtract
	KeyPlus
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDn
	KeyBackspace
	KeyTab
	KeyPrtScrn
	KeyPause
	KeyMax
)

// CaptureFile describes one capture recorded during this session, as
// reported by the tool's inventory.
type CaptureFile struct {
	// Path is where the tool wrote the capture. The file may sit in a
	// temporary location until the user saves it from the replay UI.
	Path string
	// CapturedAt is the tool-reported capture timestamp.
	CapturedAt time.Time
}
