package common

const (
	CodeSuccess = 0
	CodeError   = 1
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func MakeSuccessResp(data interface{}) *Resp {
	return &Resp{
		Code: CodeSuccess,
		Msg:  "success",
		Data: data,
	}
}

func MakeErrorResp(msg string) *Resp {
	return &Resp{
		Code: CodeError,
		Msg:  msg,
	}
}

func MakeUnknownErrorResp() *Resp {
	return MakeErrorResp("unknown error")
}

func MakeNotFoundResp() *Resp {
	return MakeErrorResp("not found")
}
