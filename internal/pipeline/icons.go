package pipeline

import "regexp"

// Font Awesome 4 classes for the \fa<Name> icon commands the résumé
// class uses. Unlisted icons fall back to a plain circle so the layout
// keeps its spacing.
var iconClasses = map[string]string{
	"Phone":          "fa fa-phone",
	"Mobile":         "fa fa-mobile",
	"Envelope":       "fa fa-envelope",
	"EnvelopeO":      "fa fa-envelope-o",
	"Linkedin":       "fa fa-linkedin",
	"LinkedinSquare": "fa fa-linkedin-square",
	"Github":         "fa fa-github",
	"Globe":          "fa fa-globe",
	"MapMarker":      "fa fa-map-marker",
	"ExternalLink":   "fa fa-external-link",
	"Briefcase":      "fa fa-briefcase",
	"GraduationCap":  "fa fa-graduation-cap",
}

const iconFallbackClass = "fa fa-circle"

var iconMarkerPattern = regexp.MustCompile(`<span class="macro macro-fa([A-Z][A-Za-z]*)"></span>`)

// substituteIcons rewrites \fa<Name> markers as <i> icon elements. The
// rewrite only matches marker spans, so running it twice is a no-op.
func substituteIcons(frag string) string {
	return iconMarkerPattern.ReplaceAllStringFunc(frag, func(m string) string {
		name := iconMarkerPattern.FindStringSubmatch(m)[1]
		class, ok := iconClasses[name]
		if !ok {
			class = iconFallbackClass
		}
		return `<i class="` + class + `" aria-hidden="true"></i>`
	})
}

func applyIcons(frag string, _ *Context) string {
	return substituteIcons(frag)
}
