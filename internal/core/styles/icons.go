package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconCode      = "" // nf-fa-code
	IconSearch    = "" // nf-fa-search
	IconFolder    = "" // nf-custom-folder
	IconLightbulb = "" // nf-fa-lightbulb_o
)

// Notification icons
var (
	IconNotifyInfo    = "" // nf-fa-info_circle
	IconNotifyWarning = "" // nf-fa-warning
	IconNotifyError   = "" // nf-fa-times_circle
)
