// Package domain contains the core business entities of the code camp
// service: camps, their locations, the talks given at them and the
// speakers presenting those talks. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
