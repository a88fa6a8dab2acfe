package types

// Version is the canonical project version.
// The CLI and the file-completed event contract share this version.
const Version = "0.1.0"

// ContractVersion is the version stamped on published file-completed events.
// It moves in lockstep with Version.
const ContractVersion = Version
