package catalog

// defaultEntries is the built-in announcement catalog. Indices are stored in
// member notification histories; append new entries at the end only.
var defaultEntries = []Entry{
	{
		Text:     "🎉 Parabéns! Você sobreviveu mais um ano... mas lembre-se: the cake is a lie! 🍰",
		ImageURL: "https://media.tenor.com/BK9yDFxI2vgAAAAM/aperture-science-portal.gif",
	},
	{
		Text:     "🎂 Feliz aniversário! Você escolheu a pílula vermelha e agora está mais um ano na Matrix! 🔴",
		ImageURL: "https://i.pinimg.com/originals/8f/79/01/8f7901e35f159be3521b1a4a04912628.gif",
	},
	{
		Text:     "🎊 Subiu de nível! Mas o custo de mana pra levantar da cama aumentou.",
		ImageURL: "https://i.pinimg.com/originals/d0/3d/69/d03d69dbafb4dc8d13d082b327c2bcd5.gif",
	},
	{
		Text:     "🌟 Feliz aniversário! A vida te deu mais 365 dias pra continuar fingindo que sabe o que tá fazendo — sucesso!",
		ImageURL: "https://i.pinimg.com/originals/35/1c/8a/351c8a0fbabdc2196e3e1542e5335c2f.gif",
	},
	{
		Text:     "🎁 Feliz aniversário! Que seu dia tenha menos bugs e mais cutscenes agradáveis.",
		ImageURL: "https://i.pinimg.com/originals/95/b6/e4/95b6e46cdf26dfb2e8b898f21d98f912.gif",
	},
	{
		Text:     "🎪 Parabéns! Envelhecer é tipo atualizar o sistema: promete melhorias, mas deixa tudo mais lento.",
		ImageURL: "https://i.pinimg.com/originals/da/36/63/da3663c176a175053a93bee0a91553e1.gif",
	},
	{
		Text:     "🎈 Muitos parabéns! Você está oficialmente mais velho e mais sábio (ou pelo menos mais velho)!",
		ImageURL: "https://media.tenor.com/tPWIqdustusAAAAM/rei-dancing.gif",
	},
	{
		Text:     "🎭 Parabéns! Você tá tipo um jogo indie: caótico, cheio de charme e ninguém entende direito a história.",
		ImageURL: "https://i.pinimg.com/1200x/f8/a4/92/f8a492643a7bcda08148faea327a063b.jpg",
	},
	{
		Text:     "🍰 Feliz aniversário! Que seu bolo tenha mais camadas que uma missão do Elden Ring.",
		ImageURL: "https://i.pinimg.com/originals/d5/43/e4/d543e4d6958a4c64eb45545de3c4ed6f.gif",
	},
	{
		Text:     "🎊 Parabéns! Você está um ano mais próximo de poder reclamar do 'jovem de hoje em dia'!",
		ImageURL: "https://media0.giphy.com/media/oz03Vg3TapuUqtiJos/giphy.gif",
	},
	{
		Text:     "🎈 Muitos parabéns! Que você continue sendo a pessoa especial que é (mesmo que às vezes seja especial de um jeito diferente)!",
		ImageURL: "https://www.picgifs.com/glitter-gifs/h/happy-birthday/picgifs-happy-birthday-418491.gif",
	},
	{
		Text:     "🎂 Feliz aniversário! Hoje é o dia perfeito para refletir sobre todas as decisões questionáveis que te trouxeram até aqui!",
		ImageURL: "https://pa1.aminoapps.com/5874/38ba8eb66e135aeb7136956a2ce5b0a0b83d30e8_hq.gif",
	},
	{
		Text:     "🎉 Parabéns! Você ganhou o direito de usar a frase 'na minha época' com mais propriedade!",
		ImageURL: "https://greeting-cards.yolasite.com/resources/900956t6ykasplyr.gif",
	},
	{
		Text:     "🎪 Muitos parabéns! Você está oficialmente mais experiente em cometer os mesmos erros de sempre!",
		ImageURL: "https://i.redd.it/54sr4nsssq371.gif",
	},
	{
		Text:     "🎯 Muitos parabéns! Você sobreviveu mais um ano sem ser cancelado nas redes sociais!",
		ImageURL: "https://i.pinimg.com/originals/4c/29/28/4c2928220ad9965425bfa8edbb63ea91.gif",
	},
}
