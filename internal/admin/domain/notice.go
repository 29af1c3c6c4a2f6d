package domain

import "fmt"

// Notice is the title/description pair shown after an admin action.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

const destructive = "destructive"

func SignedUpNotice() Notice {
	return Notice{Title: "Conta criada com sucesso", Description: "Você pode fazer login agora."}
}

func SignedInNotice(name string) Notice {
	return Notice{Title: "Login realizado com sucesso", Description: fmt.Sprintf("Bem-vindo, %s!", name)}
}

func SignedOutNotice() Notice {
	return Notice{Title: "Logout realizado", Description: "Você foi desconectado com sucesso."}
}

func AccessDeniedNotice() Notice {
	return Notice{Title: "Acesso negado", Description: "Você não tem permissões administrativas.", Variant: destructive}
}

func SignInFailedNotice(description string) Notice {
	return Notice{Title: "Erro no login", Description: description, Variant: destructive}
}

func SignUpFailedNotice(description string) Notice {
	return Notice{Title: "Erro no cadastro", Description: description, Variant: destructive}
}

func LoadFailedNotice(description string) Notice {
	return Notice{Title: "Erro ao carregar dados", Description: description, Variant: destructive}
}
