// Package clock hands out the current time. OTP expiry and link
// confirmation timestamps read it through Clocker, and tests pin it with
// Manual.
package clock
