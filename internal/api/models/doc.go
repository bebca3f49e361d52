// Package models holds the JSON transfer objects of the camps API and the
// conversions between them and the domain entities.
//
// Conversion rules:
//
//   - Camp to CampModel copies the scalar fields and flattens
//     Location.VenueName into Venue. Talks are converted one by one.
//   - CampModel to Camp is the inverse: Venue becomes Location.VenueName.
//     No other location field is populated.
//   - Talk to TalkModel copies every field, speaker included. TalkModel to
//     Talk never sets Camp or Speaker; the caller attaches them.
//   - Speaker and SpeakerModel mirror each other field for field.
package models
