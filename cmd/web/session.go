package main

// sandboxIDSessionKey keys the sandbox identifier in the scs session data so
// that a browser keeps the same sandbox across page loads.
const sandboxIDSessionKey = "sandboxID"
