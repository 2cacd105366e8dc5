//go:build windows

package notify

import (
	"context"
	"fmt"
	"os/exec"
)

// windowsSender implements Sender for Windows using PowerShell
type windowsSender struct {
	available bool
}

func newNativeSender(string) Sender {
	return &windowsSender{available: toolAvailable("powershell")}
}

// Send shows a toast notification using PowerShell
func (s *windowsSender) Send(ctx context.Context, n Notification) error {
	appName := n.AppName
	if appName == "" {
		appName = "notify-agent-mcp"
	}
	audio := `<audio silent="true"/>`
	if n.Sound {
		audio = `<audio src="ms-winsoundevent:Notification.Default"/>`
	}

	script := fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$textNodes = $template.GetElementsByTagName('text')
$textNodes.Item(0).AppendChild($template.CreateTextNode('%s')) | Out-Null
$textNodes.Item(1).AppendChild($template.CreateTextNode('%s')) | Out-Null
$audio = [Windows.Data.Xml.Dom.XmlDocument]::new()
$audio.LoadXml('%s')
$template.DocumentElement.AppendChild($template.ImportNode($audio.DocumentElement, $true)) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('%s').Show($toast)
`, escapeForPowerShell(n.Title), escapeForPowerShell(n.Message), audio, escapeForPowerShell(appName))

	cmd := exec.CommandContext(ctx, "powershell", "-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", script)
	return cmd.Run()
}

// Available returns true if PowerShell is available
func (s *windowsSender) Available() bool {
	return s.available
}
