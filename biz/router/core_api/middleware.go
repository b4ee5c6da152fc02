// Code generated by hertz generator.

package core_api

import (
	"github.com/cloudwego/hertz/pkg/app"
)

func rootMw() []app.HandlerFunc {
	// your code...
	return nil
}

func _apiMw() []app.HandlerFunc {
	// your code...
	return nil
}

func _v1Mw() []app.HandlerFunc {
	// your code...
	return nil
}

func _connectMw() []app.HandlerFunc {
	// your code...
	return nil
}

func _messagesMw() []app.HandlerFunc {
	// your code...
	return nil
}

func _getmessagesMw() []app.HandlerFunc {
	// your code...
	return nil
}

func _sendmessageMw() []app.HandlerFunc {
	// your code...
	return nil
}

func _conversationsMw() []app.HandlerFunc {
	// your code...
	return nil
}

func _listpartnersMw() []app.HandlerFunc {
	// your code...
	return nil
}

func _getunreadcountMw() []app.HandlerFunc {
	// your code...
	return nil
}

func _deleteconversationMw() []app.HandlerFunc {
	// your code...
	return nil
}

func _markasreadMw() []app.HandlerFunc {
	// your code...
	return nil
}

func _hideconversationMw() []app.HandlerFunc {
	// your code...
	return nil
}
