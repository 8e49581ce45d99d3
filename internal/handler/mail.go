package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
)

// publishMail 将通知邮件投递到消息队列，由 cmd/mail 异步发送。
// 通知发送失败不应该影响主操作的结果，所以这里只记录日志
func (h *Handler) publishMail(r *http.Request, msg domain.MailMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		slog.Error("无法序列化通知邮件", "type", msg.Type, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("无法投递通知邮件", "type", msg.Type, "path", r.URL.Path, "error", err)
	}
}
