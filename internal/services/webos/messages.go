package webos

import (
	"encoding/json"
	"fmt"
)

// Frame types used by the TV's control service.
const (
	typeRegister   = "register"
	typeRegistered = "registered"
	typeRequest    = "request"
	typeResponse   = "response"
	typeError      = "error"
)

// Command is a control-service URI.
type Command string

// Supported commands.
const (
	CommandTurnOff Command = "ssap://system/turnOff"
)

// message is a single frame on the control socket.
type message struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	URI     string          `json:"uri,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type registerPayload struct {
	ForcePairing bool     `json:"forcePairing"`
	PairingType  string   `json:"pairingType"`
	ClientKey    string   `json:"client-key,omitempty"`
	Manifest     manifest `json:"manifest"`
}

type registeredPayload struct {
	ClientKey string `json:"client-key"`
}

type responsePayload struct {
	ReturnValue *bool  `json:"returnValue"`
	ErrorText   string `json:"errorText"`
	PairingType string `json:"pairingType"`
}

type manifest struct {
	ManifestVersion int            `json:"manifestVersion"`
	AppVersion      string         `json:"appVersion"`
	Signed          signedManifest `json:"signed"`
	Permissions     []string       `json:"permissions"`
	Signatures      []signature    `json:"signatures"`
}

// signedManifest is covered by manifestSignature.
type signedManifest struct {
	Created              string            `json:"created"`
	AppID                string            `json:"appId"`
	VendorID             string            `json:"vendorId"`
	LocalizedAppNames    map[string]string `json:"localizedAppNames"`
	LocalizedVendorNames map[string]string `json:"localizedVendorNames"`
	Permissions          []string          `json:"permissions"`
	Serial               string            `json:"serial"`
}

type signature struct {
	SignatureVersion int    `json:"signatureVersion"`
	Signature        string `json:"signature"`
}

var signedPermissions = []string{
	"TEST_SECURE",
	"CONTROL_INPUT_TEXT",
	"CONTROL_MOUSE_AND_KEYBOARD",
	"READ_INSTALLED_APPS",
	"READ_LGE_SDX",
	"READ_NOTIFICATIONS",
	"SEARCH",
	"WRITE_SETTINGS",
	"WRITE_NOTIFICATION_ALERT",
	"CONTROL_POWER",
	"READ_CURRENT_CHANNEL",
	"READ_RUNNING_APPS",
	"READ_UPDATE_INFO",
	"UPDATE_FROM_REMOTE_APP",
	"READ_LGE_TV_INPUT_EVENTS",
	"READ_TV_CURRENT_TIME",
}

var permissions = []string{
	"LAUNCH",
	"LAUNCH_WEBAPP",
	"APP_TO_APP",
	"CLOSE",
	"TEST_OPEN",
	"TEST_PROTECTED",
	"CONTROL_AUDIO",
	"CONTROL_DISPLAY",
	"CONTROL_INPUT_JOYSTICK",
	"CONTROL_INPUT_MEDIA_RECORDING",
	"CONTROL_INPUT_MEDIA_PLAYBACK",
	"CONTROL_INPUT_TV",
	"CONTROL_POWER",
	"READ_APP_STATUS",
	"READ_CURRENT_CHANNEL",
	"READ_INPUT_DEVICE_LIST",
	"READ_NETWORK_STATE",
	"READ_RUNNING_APPS",
	"READ_TV_CHANNEL_LIST",
	"WRITE_NOTIFICATION_TOAST",
	"READ_POWER_STATE",
	"READ_COUNTRY_INFO",
}

const manifestSignature = "eyJhbGdvcml0aG0iOiJSU0EtU0hBMjU2Iiwia2V5SWQiOiJ0ZXN0LXNpZ25pbmctY2VydCIsInNpZ25hdHVyZVZlcnNpb24iOjF9." +
	"hrVRgjCwXVvE2OOSpDZ58hR+59aFNwYDyjQgKk3auukd7pcegmE2CzPCa0bJ0ZsRAcKkCTJrWo5iDzNhMBWRyaMOv5zWSrthlf7G128qvIlpMT0YNY+n/FaOHE73uLrS/g7swl3/qH/BGFG2Hu4RlL48eb3lLKqTt2xKHdCs6Cd4RMfJPYnzgvI4BNrFUKsjkcu+WD4OO2A27Pq1n50cMchmcaXadJhGrOqH5YmHdOCj5NSHzJYrsW0HPlpuAx/ECMeIZYDh6RMqaFM2DXzdKX9NmmyqzJ3o/0lkk/N97gfVRLW5hA29yeAwaCViZNCP8iC9aO0q9fQojoa7NQnAtw=="

// defaultManifest is the LG test-signed manifest that webOS accepts from
// third-party remote apps.
func defaultManifest() manifest {
	return manifest{
		ManifestVersion: 1,
		AppVersion:      "1.1",
		Signed: signedManifest{
			Created:  "20140509",
			AppID:    "com.lge.test",
			VendorID: "com.lge",
			LocalizedAppNames: map[string]string{
				"":       "LG Remote App",
				"ko-KR":  "리모컨 앱",
				"zxx-XX": "ЛГ Rэмotэ AПП",
			},
			LocalizedVendorNames: map[string]string{"": "LG Electronics"},
			Permissions:          signedPermissions,
			Serial:               "2f930e2d2cfe083771f68e4fe7bb07",
		},
		Permissions: permissions,
		Signatures: []signature{
			{SignatureVersion: 1, Signature: manifestSignature},
		},
	}
}

// Error is an error frame sent by the TV.
type Error struct {
	ID      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("TV returned error for %s: %s", e.ID, e.Message)
}
