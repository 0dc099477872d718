package utils

// REVISION is stamped on every API response. Overridden at build time with
// -ldflags "-X github.com/SwiftFiat/SwiftFiat-Ledger/utils.REVISION=<sha>".
var REVISION = "dev"
