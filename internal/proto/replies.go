// Package proto defines the text wire protocol: the command keywords clients
// send and the reply lines the server pushes back. Every reply is a single
// UTF-8 line terminated by '\n'.
package proto

import "fmt"

// Client command keywords (first whitespace-delimited token of a frame).
const (
	CmdLogin  = "login"
	CmdSay    = "say"
	CmdLook   = "look"
	CmdLogout = "logout"
)

// Server reply lines.
const (
	ConnectSuccess = "Connect Success\n"
	LoginSuccess   = "Login Success\n"
	UserNameEmpty  = "UserName Empty\n"
	UserNameExist  = "UserName Exist\n"
	OnlineUsers    = "Online Users:\n"
)

// Entered formats the arrival notice broadcast to the chat room.
func Entered(name string) string {
	return fmt.Sprintf("%s has entered the room.\n", name)
}

// Left formats the departure notice broadcast to the chat room.
func Left(name string) string {
	return fmt.Sprintf("%s has left the room.\n", name)
}

// Say formats a chat line for broadcast.
func Say(name, text string) string {
	return fmt.Sprintf("%s: %s\n", name, text)
}

// Unknown formats the reply to an unrecognized command keyword.
func Unknown(cmd string) string {
	return fmt.Sprintf("Unknown command %s\n", cmd)
}
