// Package service provides the activation session tracker for snotify.
//
// ActivationService owns the process's view of startup-notification
// state: the token inherited from the environment, the issuing of fresh
// tokens for launch requests, and the completion sequence that tags a
// window and announces startup-complete to the window manager.
//
// The service never blocks the event loop on the window-manager round
// trip; token delivery arrives through a TokenSink the binding installs.
package service
