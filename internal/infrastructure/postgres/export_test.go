package postgres

// NewPoolConfig expone newPoolConfig a los tests externos.
var NewPoolConfig = newPoolConfig
