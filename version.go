package elementmodel

// Version is the current version of the elementmodel library.
const Version = "0.1.0"
