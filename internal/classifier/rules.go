package classifier

import (
	"strings"

	"emailtriage/internal/model"
)

// Rule maps any of its terms, found as a substring of the lower-cased email,
// to a category.
type Rule struct {
	Name     string
	Category model.Category
	Terms    []string
}

// Match returns the first term contained in lowered.
func (r Rule) Match(lowered string) (string, bool) {
	for _, term := range r.Terms {
		if strings.Contains(lowered, term) {
			return term, true
		}
	}
	return "", false
}

// DefaultRules returns the rule table in priority order. Promotional and seasonal
// content is checked before support vocabulary, so an email mentioning both
// (e.g. a complaint about a "black friday" order) is Unproductive.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "unproductive_phrases", Category: model.Unproductive, Terms: unproductivePhrases},
		{Name: "unproductive_words", Category: model.Unproductive, Terms: unproductiveWords},
		{Name: "productive_triggers", Category: model.Productive, Terms: productiveTriggers},
	}
}

var unproductivePhrases = []string{
	// promotional
	"essa oferta é para você", "não fique de fora", "você foi selecionado",
	"condição exclusiva para você", "promoção válida por tempo limitado",
	"aproveite enquanto dura", "só para clientes especiais", "temos uma surpresa para você",
	"você não pode perder", "olha essa novidade", "confira nossa nova coleção",
	"resgate seu cupom", "válido até hoje", "condições imperdíveis",
	"ideal para você economizar", "veja o que preparamos para você",
	"últimos dias da promoção", "essa é a sua chance", "oferta válida apenas hoje",
	"compre agora e economize", "promoção exclusiva online", "frete grátis em todo o site",
	"até 70% de desconto", "brinde especial para você", "ganhe mais por menos",
	"desconto especial para clientes fiéis", "clique e aproveite", "últimas unidades disponíveis",
	"condição nunca vista antes", "receba seu presente agora", "oportunidade única",
	"o melhor preço do mercado", "liquidação total", "não perca essa oportunidade",
	"exclusivo para assinantes", "parcelamento em até 12x sem juros", "só até amanhã",
	"acelere e aproveite", "leve 3 e pague 2", "compre um e leve outro",
	// holidays and seasonal
	"especial de natal", "celebre o natal com a gente", "comemore o ano novo em grande estilo",
	"promoção de fim de ano", "descontos de natal imperdíveis", "presentes para todos os gostos",
	"ofertas natalinas", "liquidação de ano novo", "boas festas com economia",
	"esquente seu carnaval com ofertas", "promoção de páscoa", "celebre com descontos especiais",
	"leve o presente ideal", "promoção para o dia das mães", "presentes para o dia dos pais",
	"amor e ofertas no ar", "descontos apaixonantes", "ofertas assustadoras de halloween",
	"só hoje: oferta de páscoa", "venha conferir nossas ofertas natalinas",
	"natal premiado para você", "entre no clima com nossas ofertas",
	"o presente perfeito está aqui", "tempo de economizar",
	"presentes inesquecíveis com desconto", "liquidação pós-feriado",
	"comemore economizando", "mais alegria, menos preço",
	"promoções temáticas incríveis", "boas festas e bons preços",
}

var unproductiveWords = []string{
	// promotional
	"promoção", "desconto", "grátis", "oferta", "imperdível", "cupom", "voucher", "brinde",
	"lançamento", "exclusivo", "últimas unidades", "compre agora", "aproveite", "liquidação",
	"preço especial", "preço baixo", "frete grátis", "amostra grátis", "black friday",
	"cyber monday", "aniversário de loja", "economize", "cashback", "vantagem", "novidade",
	"oportunidade", "ganhe", "garanta já", "por tempo limitado", "somente hoje", "último dia",
	"não perca", "corra", "cliente vip", "oferta relâmpago", "melhor preço",
	"condições especiais", "parcelamento facilitado", "sem juros",
	// holidays and seasonal
	"natal", "ano novo", "réveillon", "carnaval", "páscoa", "dia das mães", "dia dos pais",
	"dia dos namorados", "halloween", "feriado", "comemoração", "festivo", "celebração",
	"especial de natal", "oferta de páscoa", "promoção de feriado", "desconto de fim de ano",
	"liquidação de natal", "presentes", "presenteie", "ceia", "festa", "temporada de compras",
}

var productiveTriggers = []string{
	"erro", "falha", "urgente", "problema", "suporte", "ajuda",
	"travando", "bug", "inacessível", "crítico", "instabilidade",
	"parou", "lentidão", "inconsistência", "não funciona", "não carrega",
	"não consigo acessar", "não abre", "não entra", "não responde",
	"não envia", "não reconhece", "sistema caiu", "fora do ar", "apagou tudo",
	"me desconectou", "dados sumiram", "login inválido", "tela branca",
	"tela preta", "formulário travado", "formulário com erro", "crash",
	"não consigo concluir", "não consigo finalizar", "não salva", "código de erro",
	"erro 500", "erro 404", "erro interno", "não consigo emitir boleto",
	"erro na nota fiscal", "falha no pagamento", "problema financeiro",
	"não gerou fatura", "estou sem faturamento", "cliente não recebeu",
	"venda não concluída", "pedido não foi processado", "impacta minha operação",
	"interrompeu minhas vendas", "me gerou custo", "vou ter que parar tudo",
	"estou sendo cobrado", "isso afeta a entrega", "impacta contrato",
	"estou atrasado por causa disso", "isso pode gerar multa", "questão legal",
	"problema jurídico", "abri chamado", "ticket", "aguardo contato",
	"ninguém me respondeu", "não tive retorno", "péssima experiência",
	"muito ruim", "não estou satisfeito", "inaceitável", "decepcionante",
	"insuportável", "vou cancelar", "nunca mais uso", "falta de respeito",
	"esperando há dias", "ninguém resolve", "já tentei de tudo",
	"problema recorrente", "isso acontece sempre", "já tive esse erro antes",
	"quero falar com alguém", "como posso resolver", "passo a passo",
	"preciso falar com alguém", "me ajudem", "socorro",
}
