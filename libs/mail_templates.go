package libs

import (
	"bytes"
	"html/template"
)

const mailLayout = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #fdf6ee; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #b5651d; text-align: center; margin-bottom: 30px; }
        .button { display: inline-block; background-color: #b5651d; color: white; padding: 12px 24px; border-radius: 6px; text-decoration: none; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">La Lune Bakery</div>
        <p>Xin chào {{.Name}},</p>
        <p>{{.Intro}}</p>
        <p style="text-align: center; margin: 30px 0;"><a class="button" href="{{.Link}}">{{.Action}}</a></p>
        <p>Nếu nút không hoạt động, hãy mở liên kết sau: <br><a href="{{.Link}}">{{.Link}}</a></p>
        {{if .Note}}<p><strong>{{.Note}}</strong></p>{{end}}
        <div class="footer">
            <p>Đây là email tự động, vui lòng không trả lời.</p>
        </div>
    </div>
</body>
</html>`

var mailTemplate = template.Must(template.New("mail").Parse(mailLayout))

type mailData struct {
	Name   string
	Intro  string
	Action string
	Link   string
	Note   string
}

func renderMail(d mailData) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplate.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func VerificationEmail(to, name, link string) (Message, error) {
	body, err := renderMail(mailData{
		Name:   name,
		Intro:  "Cảm ơn bạn đã đăng ký tài khoản. Hãy xác nhận địa chỉ email của bạn.",
		Action: "Xác nhận tài khoản",
		Link:   link,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Xác nhận tài khoản - La Lune Bakery", HTMLBody: body}, nil
}

func PasswordResetEmail(to, name, link string) (Message, error) {
	body, err := renderMail(mailData{
		Name:   name,
		Intro:  "Bạn đã yêu cầu đặt lại mật khẩu. Nhấn vào nút bên dưới để chọn mật khẩu mới.",
		Action: "Đặt lại mật khẩu",
		Link:   link,
		Note:   "Liên kết này sẽ hết hạn sau 1 giờ.",
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Đặt lại mật khẩu - La Lune Bakery", HTMLBody: body}, nil
}
