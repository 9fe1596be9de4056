// Package icons defines the icon identifiers placed on HUD actions.
//
// The catalog maps stable icon identifiers to labels and to the Font
// Awesome markup the HUD renders next to an action name. Adapters refer to
// icons by identifier and never embed markup directly.
package icons
