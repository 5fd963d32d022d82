package catan_client

const (
	// Board endpoints answer with the full board state as JSON
	GetBoardEndpoint     = "/getboard"
	SetClassicEndpoint   = "/setclassic"
	SetExtensionEndpoint = "/setextension"
	StartGameEndpoint    = "/startgame"
	EndGameEndpoint      = "/endgame"

	// Dice endpoints answer with the number as plain text
	SelectNumberEndpoint = "/selectNumber"
	RollDiceEndpoint     = "/rollDice"

	// Query parameter carrying numbers and setting values
	ValueParam = "value"

	// Headers
	AcceptHeader    = "Accept"
	JsonContentType = "application/json"
)
