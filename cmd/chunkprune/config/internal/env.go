package internal

// EnvPrefix is a prefix of ENV variables related
// to pruner configuration.
const EnvPrefix = "chunkprune"

// EnvSeparator is a section separator in ENV variables.
const EnvSeparator = "_"
